package types

import "time"

// EventKind distinguishes logins from logouts. The numeric values match the
// Windows TerminalServices-LocalSessionManager event IDs the collector reads.
type EventKind int

const (
	KindLogin  EventKind = 21
	KindLogout EventKind = 23
)

// RawEvent is one observed login or logout on one server.
type RawEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      EventKind `json:"kind"`
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	Server    string    `json:"server"`
}
