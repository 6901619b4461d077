package appointment

import (
	"slices"
	"sort"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// Interval is a half-open [Start, End) busy range.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && i.End.After(o.Start)
}

// CalendarIndex holds the busy intervals of one practitioner day, ordered
// by start time. Cancelled and no-show appointments are never indexed.
type CalendarIndex struct {
	intervals []Interval
}

func NewCalendarIndex(appointments []models.Appointment) *CalendarIndex {
	idx := &CalendarIndex{
		intervals: make([]Interval, 0, len(appointments)),
	}

	for _, ap := range appointments {
		if !Status(ap.Status).Blocks() {
			continue
		}
		idx.intervals = append(idx.intervals, Interval{Start: ap.StartTime, End: ap.EndTime})
	}

	sort.SliceStable(idx.intervals, func(a, b int) bool {
		return idx.intervals[a].Start.Before(idx.intervals[b].Start)
	})

	return idx
}

// Intervals returns a copy of the ordered busy intervals.
func (c *CalendarIndex) Intervals() []Interval {
	if c == nil {
		return nil
	}
	return slices.Clone(c.intervals)
}

func (c *CalendarIndex) Len() int {
	if c == nil {
		return 0
	}
	return len(c.intervals)
}

// Conflicts reports whether candidate intersects any indexed interval.
func (c *CalendarIndex) Conflicts(candidate Interval) bool {
	if c == nil {
		return false
	}

	// everything from idx onwards starts at or after candidate.End
	idx := sort.Search(len(c.intervals), func(i int) bool {
		return !c.intervals[i].Start.Before(candidate.End)
	})

	for i := idx - 1; i >= 0; i-- {
		if c.intervals[i].Overlaps(candidate) {
			return true
		}
	}
	return false
}

// Insert adds iv keeping the index ordered.
func (c *CalendarIndex) Insert(iv Interval) error {
	if !iv.Start.Before(iv.End) {
		return ErrInvalidConfiguration
	}
	if c.Conflicts(iv) {
		return ErrIntervalOverlap
	}

	pos := sort.Search(len(c.intervals), func(i int) bool {
		return iv.Start.Before(c.intervals[i].Start)
	})
	c.intervals = slices.Insert(c.intervals, pos, iv)
	return nil
}
