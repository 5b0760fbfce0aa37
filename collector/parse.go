package collector

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rdpstats/rdp-session-stats/types"
)

// rawPSEvent mirrors one element of the remote ConvertTo-Json output.
type rawPSEvent struct {
	TimeCreated string `json:"TimeCreated"`
	ID          int    `json:"Id"`
	User        string `json:"User"`
	UserName    string `json:"UserName"`
}

var psDateDigits = regexp.MustCompile(`\d+`)

// parsePSDate converts the PowerShell JSON date encoding, e.g.
// "/Date(1745060200298)/", to a local time truncated to whole seconds.
func parsePSDate(s string) (time.Time, bool) {
	digits := psDateDigits.FindString(s)
	if digits == "" {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms).Truncate(time.Second), true
}

// parseEvents decodes one server's JSON payload. ConvertTo-Json emits a bare
// object instead of an array when exactly one event matched; both shapes are
// accepted, and empty output means the window had no events. Events with
// unparseable timestamps or unexpected IDs are dropped, not errors.
func parseEvents(out, server string) ([]types.RawEvent, error) {
	out = strings.TrimSpace(out)
	if out == "" {
		return nil, nil
	}

	var raw []rawPSEvent
	if err := json.Unmarshal([]byte(out), &raw); err != nil {
		var single rawPSEvent
		if err2 := json.Unmarshal([]byte(out), &single); err2 != nil {
			return nil, err
		}
		raw = []rawPSEvent{single}
	}

	events := make([]types.RawEvent, 0, len(raw))
	for _, r := range raw {
		kind := types.EventKind(r.ID)
		if kind != types.KindLogin && kind != types.KindLogout {
			continue
		}
		ts, ok := parsePSDate(r.TimeCreated)
		if !ok {
			continue
		}
		events = append(events, types.RawEvent{
			Timestamp: ts,
			Kind:      kind,
			UserID:    r.User,
			Username:  r.UserName,
			Server:    server,
		})
	}
	return events, nil
}
