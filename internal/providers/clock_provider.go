package providers

import "github.com/jonboulle/clockwork"

// NewClockProvider supplies the wall clock. Tests inject a
// clockwork.FakeClock instead so tick behavior is verifiable without
// real waits.
func NewClockProvider() clockwork.Clock {
	return clockwork.NewRealClock()
}
