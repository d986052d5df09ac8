package utils

import "time"

// Timestamps are persisted in UTC; all user-facing dates are presented in
// WIB (UTC+7), and "today" for due-window computation is WIB today, never
// UTC today.
var displayZone = time.FixedZone("WIB", 7*60*60)

// DisplayZone returns the fixed display timezone.
func DisplayZone() *time.Location {
	return displayZone
}

// ToDisplay converts a stored UTC timestamp to the display timezone.
func ToDisplay(t time.Time) time.Time {
	return t.In(displayZone)
}

// LocalMidnight truncates t to midnight in the display timezone.
func LocalMidnight(t time.Time) time.Time {
	local := t.In(displayZone)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, displayZone)
}

// Today returns the current date at midnight in the display timezone.
func Today() time.Time {
	return LocalMidnight(time.Now())
}
