package match

import "time"

// Timer is a handle to a one-shot scheduled callback. Stop reports whether
// the call was prevented from firing. A stopped timer's callback may already
// be in flight; callers of the engine never see such a fire because every
// callback revalidates lobby state under the registry lock before acting.
type Timer interface {
	Stop() bool
}

// Clock schedules one-shot callbacks. The engine never blocks a goroutine to
// wait; all waiting is represented by a scheduled callback.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns a Clock backed by time.AfterFunc.
func SystemClock() Clock { return systemClock{} }
