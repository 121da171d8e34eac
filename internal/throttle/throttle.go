package throttle

import (
	"context"
	"time"
)

// SleepFunction blocks for the requested duration while honoring context cancellation.
type SleepFunction func(executionContext context.Context, duration time.Duration)

// Throttle enforces a fixed courtesy delay between consecutive network calls.
type Throttle struct {
	interval      time.Duration
	sleepFunction SleepFunction
}

// NewThrottle constructs a Throttle with the provided interval and the default sleep behavior.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{
		interval:      interval,
		sleepFunction: contextAwareSleep,
	}
}

// NewThrottleWithSleep constructs a Throttle with an injected sleep function for testing.
func NewThrottleWithSleep(interval time.Duration, sleepFunction SleepFunction) *Throttle {
	if sleepFunction == nil {
		sleepFunction = contextAwareSleep
	}
	return &Throttle{
		interval:      interval,
		sleepFunction: sleepFunction,
	}
}

// Wait blocks for the configured interval. The delay applies after every
// attempt regardless of outcome and is never skipped.
func (throttle *Throttle) Wait(executionContext context.Context) {
	if throttle == nil || throttle.interval <= 0 {
		return
	}
	throttle.sleepFunction(executionContext, throttle.interval)
}

func contextAwareSleep(executionContext context.Context, duration time.Duration) {
	if executionContext == nil {
		time.Sleep(duration)
		return
	}

	delayTimer := time.NewTimer(duration)
	defer delayTimer.Stop()

	select {
	case <-delayTimer.C:
	case <-executionContext.Done():
	}
}
