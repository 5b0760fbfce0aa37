package report

import (
	"fmt"
	"time"
)

const (
	// NoLogout is the logout_server value for sessions whose logout event was
	// never observed inside the reporting window.
	NoLogout = "no logout"

	noLogoutSuffix = " (no logout)"

	// AllServers marks per-day and per-period total rows in the flat report.
	AllServers = "ALL SERVERS"

	dayTotalLabel    = "Day total:"
	periodTotalLabel = "Period total:"
)

// SessionRecord is one reconstructed interval for one user on one calendar
// date. All fields are preformatted strings so both report shapes and the CLI
// serialize it as-is.
type SessionRecord struct {
	Date         string `json:"date"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	LoginServer  string `json:"login_server"`
	LogoutServer string `json:"logout_server"`
	LoginTime    string `json:"login_time"`
	LogoutTime   string `json:"logout_time"`
	Duration     string `json:"duration"`
}

// FormatDuration renders an elapsed time as H:MM:SS with unpadded hours.
// Totals spanning several days keep accumulating hours (26:00:00).
func FormatDuration(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
