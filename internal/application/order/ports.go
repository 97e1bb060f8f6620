package order

import "time"

type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the local wall clock, which is what receipts print.
var SystemClock Clock = ClockFunc(time.Now)
