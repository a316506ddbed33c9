package ratelim

import (
	"golang.org/x/time/rate"
)

// NewWriteLimiter allows perSecond writes with a burst of one. Zero or less
// means unlimited.
func NewWriteLimiter(perSecond float64) *rate.Limiter {
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(perSecond), 1)
}
