package behavior

import "time"

// DismissDelay is how long a dismissible alert stays up.
const DismissDelay = 5 * time.Second

// Dismisser closes an alert. Closing one that has already left the page
// must be a no-op.
type Dismisser interface {
	Close()
}

// afterFunc is a test seam for time.AfterFunc.
var afterFunc = func(d time.Duration, f func()) { time.AfterFunc(d, f) }

// ScheduleDismiss closes a after DismissDelay. The timer is not cancellable;
// if the alert is removed first the close still fires and does nothing.
func ScheduleDismiss(a Dismisser) {
	if a == nil {
		return
	}
	afterFunc(DismissDelay, a.Close)
}
