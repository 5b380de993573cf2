package helpers

import (
	"time"

	"golang.org/x/time/rate"
)

// Throttle returns a rate.Sometimes letting its action run at most once per interval.
func Throttle(interval time.Duration) *rate.Sometimes {
	return &rate.Sometimes{
		Interval: interval,
	}
}
