package appointment

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type AvailabilityInput struct {
	PractitionerID    string
	AppointmentTypeID string
	Date              time.Time
}

// Window is one working-hour window placed on a concrete date.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(iv Interval) bool {
	return !iv.Start.Before(w.Start) && !iv.End.After(w.End)
}

type SlotQuery struct {
	Windows  []Window
	Duration time.Duration
	// Step is the candidate grid; zero means one candidate per duration.
	Step  time.Duration
	Index *CalendarIndex
	// Candidates starting before NotBefore are dropped. Zero disables.
	NotBefore time.Time
}

// WindowsFor returns the working windows of date's weekday, ordered by start.
func WindowsFor(date time.Time, schedule []models.PractitionerSchedule) ([]Window, error) {
	weekday := int(date.Weekday())

	var windows []Window
	for _, s := range schedule {
		if s.Weekday != weekday {
			continue
		}

		startClock, err := ParseClock(s.StartTime)
		if err != nil {
			return nil, ErrInvalidConfiguration
		}
		endClock, err := ParseClock(s.EndTime)
		if err != nil {
			return nil, ErrInvalidConfiguration
		}

		w := Window{Start: startClock.On(date), End: endClock.On(date)}
		if !w.Start.Before(w.End) {
			return nil, ErrInvalidConfiguration
		}
		windows = append(windows, w)
	}

	sort.Slice(windows, func(a, b int) bool {
		return windows[a].Start.Before(windows[b].Start)
	})
	return windows, nil
}

// GenerateSlots walks every window on the step grid and keeps the start
// times whose [start, start+duration) fits the window and misses every
// busy interval. The result is ascending and never nil.
func GenerateSlots(q SlotQuery) ([]time.Time, error) {
	if q.Duration <= 0 {
		return nil, ErrInvalidConfiguration
	}

	step := q.Step
	if step <= 0 {
		step = q.Duration
	}

	slots := []time.Time{}
	seen := make(map[int64]struct{})

	for _, w := range q.Windows {
		for cur := w.Start; !cur.Add(q.Duration).After(w.End); cur = cur.Add(step) {
			candidate := Interval{Start: cur, End: cur.Add(q.Duration)}

			if !q.NotBefore.IsZero() && cur.Before(q.NotBefore) {
				continue
			}
			if q.Index.Conflicts(candidate) {
				continue
			}

			// overlapping windows would otherwise emit the same start twice
			key := cur.Unix()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			slots = append(slots, cur)
		}
	}

	sort.Slice(slots, func(a, b int) bool { return slots[a].Before(slots[b]) })
	return slots, nil
}

// FitsSchedule reports whether iv lies completely inside one window.
func FitsSchedule(windows []Window, iv Interval) bool {
	for _, w := range windows {
		if w.Contains(iv) {
			return true
		}
	}
	return false
}
