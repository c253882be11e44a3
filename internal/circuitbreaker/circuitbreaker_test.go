//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestBreaker(failures, successes int) (*CircuitBreaker, *fakeClock, *[]State) {
	var transitions []State
	cb := New(Config{
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          time.Minute,
		Name:             "test",
		OnStateChange: func(_ string, _, to State) {
			transitions = append(transitions, to)
		},
	})
	clock := &fakeClock{t: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)}
	cb.now = clock.now
	return cb, clock, &transitions
}

func fail() error    { return errBoom }
func succeed() error { return nil }

func TestCircuitBreaker_Execute(t *testing.T) {
	tests := []struct {
		name      string
		calls     []func() error
		wantState State
		wantErr   error
	}{
		{name: "success keeps circuit closed", calls: []func() error{succeed}, wantState: StateClosed},
		{name: "failure below threshold", calls: []func() error{fail}, wantState: StateClosed, wantErr: errBoom},
		{name: "threshold opens circuit", calls: []func() error{fail, fail}, wantState: StateOpen, wantErr: errBoom},
		{name: "success resets failure count", calls: []func() error{fail, succeed, fail}, wantState: StateClosed, wantErr: errBoom},
		{name: "open circuit rejects calls", calls: []func() error{fail, fail, succeed}, wantState: StateOpen, wantErr: ErrCircuitOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb, _, _ := newTestBreaker(2, 1)

			var err error
			for _, call := range tt.calls {
				err = cb.Execute(context.Background(), call)
			}

			assert.Equal(t, tt.wantState, cb.State())
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	cb, clock, transitions := newTestBreaker(2, 2)

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	require.Equal(t, StateOpen, cb.State())

	clock.advance(59 * time.Second)
	assert.ErrorIs(t, cb.Execute(context.Background(), succeed), ErrCircuitOpen)

	clock.advance(time.Second)
	require.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateHalfOpen, cb.State())

	require.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, []State{StateOpen, StateHalfOpen, StateClosed}, *transitions)
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, clock, _ := newTestBreaker(2, 2)

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	clock.advance(time.Minute)

	assert.ErrorIs(t, cb.Execute(context.Background(), fail), errBoom)
	assert.Equal(t, StateOpen, cb.State())
	assert.ErrorIs(t, cb.Execute(context.Background(), succeed), ErrCircuitOpen)
}

func TestCircuitBreaker_ContextErrorsDoNotCount(t *testing.T) {
	cb, _, _ := newTestBreaker(1, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := cb.Execute(ctx, func() error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)

	ctx, cancel = context.WithCancel(context.Background())
	err = cb.Execute(ctx, func() error {
		cancel()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb, _, _ := newTestBreaker(5, 1)

	stats := cb.GetStats()
	assert.Equal(t, "test", stats.Name)
	assert.Equal(t, "closed", stats.State)
	assert.True(t, stats.IsHealthy)
	assert.Zero(t, stats.FailureCount)

	_ = cb.Execute(context.Background(), fail)

	stats = cb.GetStats()
	assert.Equal(t, 1, stats.FailureCount)
	assert.False(t, stats.LastFailure.IsZero())
	assert.False(t, cb.IsOpen())
}

func TestNew_NormalisesThresholds(t *testing.T) {
	cb := New(Config{Name: "zero"})

	assert.Equal(t, 1, cb.config.FailureThreshold)
	assert.Equal(t, 1, cb.config.SuccessThreshold)
	_ = cb.Execute(context.Background(), fail)
	assert.True(t, cb.IsOpen())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 5, config.FailureThreshold)
	assert.Equal(t, 2, config.SuccessThreshold)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, "circuit-breaker", config.Name)
}
