package application

import "time"

// SetClock replaces the library's time source
func SetClock(l *Library, now func() time.Time) {
	l.now = now
}
