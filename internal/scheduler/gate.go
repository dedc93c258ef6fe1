package scheduler

import "time"

// QuietWindow suppresses a job inside a daily UTC window. Start and end
// are hours on the 24h clock; a window may wrap midnight.
type QuietWindow struct {
	StartHour int
	EndHour   int
}

// Allows reports whether the instant falls outside the window.
func (w QuietWindow) Allows(now time.Time) bool {
	if w.StartHour == w.EndHour {
		return true
	}
	hour := now.UTC().Hour()
	if w.StartHour < w.EndHour {
		return hour < w.StartHour || hour >= w.EndHour
	}
	// Wrapping window, e.g. 22..03.
	return hour >= w.EndHour && hour < w.StartHour
}

// Gate adapts the window to the scheduler's gate signature.
func (w QuietWindow) Gate() Gate {
	return func(now time.Time) bool { return w.Allows(now) }
}

// AllOf combines gates; the result opens only when every gate does.
// Nil gates are treated as always open.
func AllOf(gates ...Gate) Gate {
	return func(now time.Time) bool {
		for _, g := range gates {
			if g != nil && !g(now) {
				return false
			}
		}
		return true
	}
}
