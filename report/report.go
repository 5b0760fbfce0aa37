// Package report reconstructs remote-desktop session intervals from raw
// login/logout events and assembles them into the flat and grouped report
// shapes. It performs no I/O and holds no state between calls; for one input
// event set the output is fully deterministic.
package report

import (
	"time"

	"go.uber.org/zap"

	"github.com/rdpstats/rdp-session-stats/types"
)

// Builder turns raw events into reports. The logger only receives anomaly
// observations (orphaned logouts, consumed logins) and never changes the
// output.
type Builder struct {
	log *zap.Logger
}

// NewBuilder returns a Builder logging to log, or to a no-op logger when log
// is nil.
func NewBuilder(log *zap.Logger) *Builder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Builder{log: log}
}

// FlatReport is the chronological list shape.
type FlatReport struct {
	StartDate     string          `json:"start_date"`
	EndDate       string          `json:"end_date"`
	TotalSessions int             `json:"total_sessions"`
	Sessions      []SessionRecord `json:"sessions"`
}

// GroupedReport nests sessions by calendar date, then by display username.
type GroupedReport struct {
	StartDate string                                `json:"start_date"`
	EndDate   string                                `json:"end_date"`
	Dates     map[string]map[string][]SessionRecord `json:"dates"`
}

// reconstruct pairs every (user, date) bucket inside the window. Users are
// visited in user_id order and dates in ascending order so the flat output is
// reproducible run to run.
func (b *Builder) reconstruct(events []types.RawEvent, window Window) []SessionRecord {
	grouped := groupEvents(events, window)
	sessions := []SessionRecord{}
	for _, id := range sortedUserIDs(grouped) {
		days := grouped[id]
		for _, date := range window.Dates() {
			bucket, ok := days[date]
			if !ok {
				continue
			}
			daySessions, _ := b.pairDay(date, id, bucket.username, bucket.events)
			sessions = append(sessions, daySessions...)
		}
	}
	return sessions
}

// Flat builds the flat report for the window. An empty window is a valid
// result with zero sessions, not an error.
func (b *Builder) Flat(events []types.RawEvent, window Window) FlatReport {
	sessions := b.reconstruct(events, window)
	return FlatReport{
		StartDate:     window.StartDate(),
		EndDate:       window.EndDate(),
		TotalSessions: len(sessions),
		Sessions:      sessions,
	}
}

// Grouped builds the date -> username -> sessions view. It contains exactly
// the sessions of the flat view, re-keyed.
func (b *Builder) Grouped(events []types.RawEvent, window Window) GroupedReport {
	dates := make(map[string]map[string][]SessionRecord)
	for _, s := range b.reconstruct(events, window) {
		byUser, ok := dates[s.Date]
		if !ok {
			byUser = make(map[string][]SessionRecord)
			dates[s.Date] = byUser
		}
		byUser[s.Username] = append(byUser[s.Username], s)
	}
	return GroupedReport{
		StartDate: window.StartDate(),
		EndDate:   window.EndDate(),
		Dates:     dates,
	}
}

// FlatWithTotals builds the flat report and appends, per user, one day-total
// row after each day's sessions and, when the window spans more than one day,
// one period-total row after all of the user's sessions. Total rows are
// presentation rows: marker text takes the place of server and time fields,
// and they are not counted in TotalSessions.
func (b *Builder) FlatWithTotals(events []types.RawEvent, window Window) FlatReport {
	grouped := groupEvents(events, window)
	rows := []SessionRecord{}
	count := 0
	for _, id := range sortedUserIDs(grouped) {
		days := grouped[id]
		var (
			periodTotal time.Duration
			username    string
		)
		for _, date := range window.Dates() {
			bucket, ok := days[date]
			if !ok {
				continue
			}
			username = bucket.username
			sessions, dayTotal := b.pairDay(date, id, bucket.username, bucket.events)
			rows = append(rows, sessions...)
			count += len(sessions)
			if dayTotal > 0 {
				rows = append(rows, totalRow(date, id, username, dayTotalLabel, dayTotal))
			}
			periodTotal += dayTotal
		}
		if periodTotal > 0 && !window.SingleDay() {
			period := window.StartDate() + " - " + window.EndDate()
			rows = append(rows, totalRow(period, id, username, periodTotalLabel, periodTotal))
		}
	}
	return FlatReport{
		StartDate:     window.StartDate(),
		EndDate:       window.EndDate(),
		TotalSessions: count,
		Sessions:      rows,
	}
}

func totalRow(date, userID, username, label string, total time.Duration) SessionRecord {
	return SessionRecord{
		Date:        date,
		UserID:      userID,
		Username:    username,
		LoginServer: AllServers,
		LogoutTime:  label,
		Duration:    FormatDuration(total),
	}
}
