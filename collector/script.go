package collector

import (
	"fmt"
	"time"
)

const eventLogName = "Microsoft-Windows-TerminalServices-LocalSessionManager/Operational"

// sessionEventsScript builds the remote Get-WinEvent query for login (21) and
// logout (23) events inside the inclusive reporting window. Properties[1] is
// the user SID, Properties[0] the display login name.
func sessionEventsScript(start, end time.Time) string {
	return fmt.Sprintf(`
$dt1 = [datetime]"%s 00:00:00"
$dt2 = [datetime]"%s 23:59:59"

Get-WinEvent -LogName "%s" |
  Where-Object {
    $_.Id -in 21,23 -and
    $_.TimeCreated -ge $dt1 -and
    $_.TimeCreated -le $dt2
  } |
  Select-Object TimeCreated, Id, @{Name="User";Expression={($_.Properties[1].Value)}}, @{Name="UserName";Expression={($_.Properties[0].Value)}} |
  Sort-Object TimeCreated |
  ConvertTo-Json -Compress -Depth 4
`, start.Format("2006-01-02"), end.Format("2006-01-02"), eventLogName)
}

// allEventsScript is the unfiltered variant used by the available-dates scan.
func allEventsScript() string {
	return fmt.Sprintf(`
Get-WinEvent -LogName "%s" |
  Where-Object { $_.Id -in 21,23 } |
  Select-Object TimeCreated, Id, @{Name="User";Expression={($_.Properties[1].Value)}}, @{Name="UserName";Expression={($_.Properties[0].Value)}} |
  Sort-Object TimeCreated |
  ConvertTo-Json -Compress -Depth 4
`, eventLogName)
}
