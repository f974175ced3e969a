package watchdog

import (
	"context"
	"sync"
	"testing"
	"time"
)

// fakePermissionStatus returns states in order, repeating the last one once
// exhausted, so a test can script a sequence of probe outcomes.
type fakePermissionStatus struct {
	mu     sync.Mutex
	states []PermissionState
	idx    int
}

func (f *fakePermissionStatus) ScreenRecording(context.Context) (PermissionState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.idx >= len(f.states) {
		return f.states[len(f.states)-1], nil
	}
	s := f.states[f.idx]
	f.idx++
	return s, nil
}

func collectSignals(t *testing.T, out <-chan Signal, n int, timeout time.Duration) []Signal {
	t.Helper()
	var got []Signal
	deadline := time.After(timeout)
	for len(got) < n {
		select {
		case sig := <-out:
			got = append(got, sig)
		case <-deadline:
			t.Fatalf("timed out waiting for %d signals, got %d: %+v", n, len(got), got)
		}
	}
	return got
}

func TestRunPermissionWatch_EmitsOnlyOnTransition(t *testing.T) {
	status := &fakePermissionStatus{states: []PermissionState{
		PermissionGranted, PermissionGranted, PermissionDenied, PermissionDenied, PermissionGranted,
	}}
	out := make(chan Signal, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go RunPermissionWatch(ctx, 2*time.Millisecond, status, out)

	signals := collectSignals(t, out, 2, time.Second)
	if signals[0].Reason != ReasonPermissionRevoked || !signals[0].Active {
		t.Errorf("signals[0] = %+v, want active PermissionRevoked", signals[0])
	}
	if signals[1].Reason != ReasonPermissionRevoked || signals[1].Active {
		t.Errorf("signals[1] = %+v, want cleared PermissionRevoked", signals[1])
	}
}

type fakeActivity struct {
	mu     sync.Mutex
	locked []bool
	asleep []bool
	li     int
	ai     int
}

func (f *fakeActivity) ScreenLocked(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.li >= len(f.locked) {
		return f.locked[len(f.locked)-1], nil
	}
	v := f.locked[f.li]
	f.li++
	return v, nil
}

func (f *fakeActivity) DisplayAsleep(context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ai >= len(f.asleep) {
		return f.asleep[len(f.asleep)-1], nil
	}
	v := f.asleep[f.ai]
	f.ai++
	return v, nil
}

func TestRunScreenLockWatch_EmitsOnlyOnTransition(t *testing.T) {
	activity := &fakeActivity{locked: []bool{false, false, true, true}}
	out := make(chan Signal, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go RunScreenLockWatch(ctx, 2*time.Millisecond, activity, out)

	signals := collectSignals(t, out, 1, time.Second)
	if signals[0].Reason != ReasonScreenLocked || !signals[0].Active {
		t.Errorf("signals[0] = %+v, want active ScreenLocked", signals[0])
	}
}

func TestRunDisplaySleepWatch_EmitsOnlyOnTransition(t *testing.T) {
	activity := &fakeActivity{asleep: []bool{false, true, true, false}}
	out := make(chan Signal, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go RunDisplaySleepWatch(ctx, 2*time.Millisecond, activity, out)

	signals := collectSignals(t, out, 2, time.Second)
	if signals[0].Reason != ReasonDisplayAsleep || !signals[0].Active {
		t.Errorf("signals[0] = %+v, want active DisplayAsleep", signals[0])
	}
	if signals[1].Reason != ReasonDisplayAsleep || signals[1].Active {
		t.Errorf("signals[1] = %+v, want cleared DisplayAsleep", signals[1])
	}
}

func TestRunPermissionWatch_StopsOnContextCancel(t *testing.T) {
	status := &fakePermissionStatus{states: []PermissionState{PermissionGranted}}
	out := make(chan Signal)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		RunPermissionWatch(ctx, time.Millisecond, status, out)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunPermissionWatch did not return after context cancellation")
	}
}
