package report

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/rdpstats/rdp-session-stats/types"
)

const timeLayout = "15:04:05"

// dayBucket holds one user's events for one calendar date. The username is
// attribution only: the last one seen for the bucket wins, user identity is
// the SID alone.
type dayBucket struct {
	username string
	events   []types.RawEvent
}

// userDays maps calendar date -> that user's bucket.
type userDays map[string]*dayBucket

// groupEvents partitions events by user_id and by the local calendar date of
// each event's own timestamp, dropping events outside the window, and
// stable-sorts every bucket chronologically.
func groupEvents(events []types.RawEvent, window Window) map[string]userDays {
	grouped := make(map[string]userDays)
	for _, ev := range events {
		if ev.Timestamp.IsZero() || !window.Contains(ev.Timestamp) {
			continue
		}
		date := ev.Timestamp.Format(dateLayout)
		days, ok := grouped[ev.UserID]
		if !ok {
			days = make(userDays)
			grouped[ev.UserID] = days
		}
		bucket, ok := days[date]
		if !ok {
			bucket = &dayBucket{}
			days[date] = bucket
		}
		bucket.username = ev.Username
		bucket.events = append(bucket.events, ev)
	}
	for _, days := range grouped {
		for _, bucket := range days {
			events := bucket.events
			sort.SliceStable(events, func(i, j int) bool {
				return events[i].Timestamp.Before(events[j].Timestamp)
			})
		}
	}
	return grouped
}

func sortedUserIDs(grouped map[string]userDays) []string {
	ids := make([]string, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// pairDay runs the left-to-right pairing scan over one user's chronologically
// sorted events for one calendar date. A login is closed by the first logout
// found anywhere later in the day, whichever server it came from; logins in
// between are consumed by that pairing. A login with no logout left on the
// day is closed at 23:59:59. Returns the sessions and their summed duration.
func (b *Builder) pairDay(date, userID, username string, events []types.RawEvent) ([]SessionRecord, time.Duration) {
	var (
		sessions []SessionRecord
		total    time.Duration
	)
	i := 0
	for i < len(events) {
		if events[i].Kind != types.KindLogin {
			// Logout with no unmatched login before it on this date.
			b.log.Debug("orphaned logout skipped",
				zap.String("user_id", userID),
				zap.String("date", date),
				zap.String("server", events[i].Server))
			i++
			continue
		}

		login := events[i]
		j := -1
		for k := i + 1; k < len(events); k++ {
			if events[k].Kind == types.KindLogout {
				j = k
				break
			}
		}

		if j >= 0 {
			logout := events[j]
			if consumed := j - i - 1; consumed > 0 {
				b.log.Debug("logins consumed by pairing",
					zap.String("user_id", userID),
					zap.String("date", date),
					zap.Int("count", consumed))
			}
			duration := logout.Timestamp.Sub(login.Timestamp)
			total += duration
			sessions = append(sessions, SessionRecord{
				Date:         date,
				UserID:       userID,
				Username:     username,
				LoginServer:  login.Server,
				LogoutServer: logout.Server,
				LoginTime:    login.Timestamp.Format(timeLayout),
				LogoutTime:   logout.Timestamp.Format(timeLayout),
				Duration:     FormatDuration(duration),
			})
			i = j + 1
			continue
		}

		end := endOfDay(login.Timestamp)
		duration := end.Sub(login.Timestamp)
		total += duration
		sessions = append(sessions, SessionRecord{
			Date:         date,
			UserID:       userID,
			Username:     username,
			LoginServer:  login.Server,
			LogoutServer: NoLogout,
			LoginTime:    login.Timestamp.Format(timeLayout),
			LogoutTime:   end.Format(timeLayout),
			Duration:     FormatDuration(duration) + noLogoutSuffix,
		})
		i++
	}
	return sessions, total
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
