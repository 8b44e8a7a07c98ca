package activity

import (
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
)

// ShiftClassifier maps instants to the shift they were worked in,
// judged by the hour of day in a single display timezone.
//
//	18:00-20:59        Shift 1, same day
//	21:00-05:59        Shift 2, late-night hours belong to the previous day
//	06:00-17:59        General
type ShiftClassifier struct {
	loc *time.Location
}

func NewShiftClassifier(loc *time.Location) ShiftClassifier {
	if loc == nil {
		loc = time.UTC
	}
	return ShiftClassifier{loc: loc}
}

// Location returns the display timezone.
func (c ShiftClassifier) Location() *time.Location {
	return c.loc
}

// Classify returns the shift for t. A nil t yields an Unknown date on the General shift.
func (c ShiftClassifier) Classify(t *time.Time) activity.Shift {
	if t == nil {
		return activity.Shift{Date: activity.ShiftDateUnknown, Label: activity.ShiftGeneral}
	}

	local := t.In(c.loc)
	h := local.Hour()
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)

	switch {
	case h >= 18 && h < 21:
		return activity.Shift{Date: day.Format(activity.ShiftDateLayout), Label: activity.ShiftOne}
	case h >= 21 || h < 6:
		if h < 6 {
			day = day.AddDate(0, 0, -1)
		}
		return activity.Shift{Date: day.Format(activity.ShiftDateLayout), Label: activity.ShiftTwo}
	default:
		return activity.Shift{Date: day.Format(activity.ShiftDateLayout), Label: activity.ShiftGeneral}
	}
}

// FormatLocal renders t as a wall-clock time in the display timezone, or missing when t is nil.
func (c ShiftClassifier) FormatLocal(t *time.Time, missing string) string {
	if t == nil {
		return missing
	}
	return t.In(c.loc).Format(activity.LocalTimeLayout)
}
