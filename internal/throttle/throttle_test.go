package throttle_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/temirov/provaudit/internal/throttle"
)

func TestWaitInvokesInjectedSleepOncePerCall(testInstance *testing.T) {
	recordedDurations := []time.Duration{}
	sleepRecorder := func(executionContext context.Context, duration time.Duration) {
		recordedDurations = append(recordedDurations, duration)
	}

	throttleInstance := throttle.NewThrottleWithSleep(250*time.Millisecond, sleepRecorder)

	throttleInstance.Wait(context.Background())
	throttleInstance.Wait(context.Background())

	require.Equal(testInstance, []time.Duration{250 * time.Millisecond, 250 * time.Millisecond}, recordedDurations)
}

func TestWaitSkipsNonPositiveIntervals(testInstance *testing.T) {
	sleepInvocations := 0
	sleepRecorder := func(executionContext context.Context, duration time.Duration) {
		sleepInvocations++
	}

	throttleInstance := throttle.NewThrottleWithSleep(0, sleepRecorder)
	throttleInstance.Wait(context.Background())

	require.Zero(testInstance, sleepInvocations)
}

func TestWaitReturnsPromptlyOnCancelledContext(testInstance *testing.T) {
	cancelledContext, cancelFunction := context.WithCancel(context.Background())
	cancelFunction()

	throttleInstance := throttle.NewThrottle(5 * time.Second)

	startedAt := time.Now()
	throttleInstance.Wait(cancelledContext)
	require.Less(testInstance, time.Since(startedAt), time.Second)
}
