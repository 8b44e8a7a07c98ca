package activity

import (
	"math"
	"sort"
	"time"

	"github.com/cmlabs-hris/activity-monitor-backend/internal/domain/activity"
)

// SessionAggregator turns one employee's raw logs into normalized sessions.
// It does no I/O and never fails; "now" is always passed in.
type SessionAggregator struct {
	classifier ShiftClassifier
}

func NewSessionAggregator(classifier ShiftClassifier) SessionAggregator {
	return SessionAggregator{classifier: classifier}
}

// Aggregate normalizes qualifying idle logs followed by every auto-break.
// The result is not sorted by time.
func (a SessionAggregator) Aggregate(idle []activity.IdleRecord, breaks []activity.AutoBreakRecord, now time.Time) []activity.NormalizedSession {
	sessions := make([]activity.NormalizedSession, 0, len(idle)+len(breaks))

	for _, rec := range idle {
		if rec.Status != activity.StatusIdle || rec.IdleStart == nil {
			continue
		}
		sessions = append(sessions, a.normalizeIdle(rec, now))
	}

	for _, rec := range breaks {
		sessions = append(sessions, a.normalizeAutoBreak(rec))
	}

	return sessions
}

func (a SessionAggregator) normalizeIdle(rec activity.IdleRecord, now time.Time) activity.NormalizedSession {
	end := now
	if rec.IdleEnd != nil {
		end = *rec.IdleEnd
	}

	shift := a.classifier.Classify(rec.IdleStart)

	return activity.NormalizedSession{
		Kind:           activity.SessionKindIdle,
		IdleStart:      copyTime(rec.IdleStart),
		IdleEnd:        copyTime(rec.IdleEnd),
		StartTimeLocal: a.classifier.FormatLocal(rec.IdleStart, activity.LocalTimeNA),
		EndTimeLocal:   a.idleEndLocal(rec),
		Reason:         rec.Reason,
		Category:       rec.Category,
		Duration:       DurationMinutes(*rec.IdleStart, end),
		ShiftDate:      shift.Date,
		ShiftLabel:     shift.Label,
	}
}

func (a SessionAggregator) idleEndLocal(rec activity.IdleRecord) string {
	switch {
	case rec.IdleStart == nil:
		return activity.LocalTimeNA
	case rec.IdleEnd == nil:
		return activity.LocalTimeOngoing
	default:
		return a.classifier.FormatLocal(rec.IdleEnd, activity.LocalTimeNA)
	}
}

func (a SessionAggregator) normalizeAutoBreak(rec activity.AutoBreakRecord) activity.NormalizedSession {
	shift := a.classifier.Classify(rec.BreakStart)

	return activity.NormalizedSession{
		Kind:           activity.SessionKindAutoBreak,
		IdleStart:      copyTime(rec.BreakStart),
		IdleEnd:        copyTime(rec.BreakEnd),
		StartTimeLocal: a.classifier.FormatLocal(rec.BreakStart, activity.LocalTimeNA),
		EndTimeLocal:   a.classifier.FormatLocal(rec.BreakEnd, activity.LocalTimeNA),
		Reason:         activity.AutoBreakReason,
		Category:       activity.CategoryAutoBreak,
		Duration:       rec.DurationMinutes,
		ShiftDate:      shift.Date,
		ShiftLabel:     shift.Label,
	}
}

// LatestStatus is the status of the idle log with the greatest timestamp.
// Ties go to the later element, so an ascending input yields its last status.
func LatestStatus(idle []activity.IdleRecord) string {
	if len(idle) == 0 {
		return activity.StatusUnknown
	}
	latest := 0
	for i := 1; i < len(idle); i++ {
		if !idle[i].Timestamp.Before(idle[latest].Timestamp) {
			latest = i
		}
	}
	return idle[latest].Status
}

// DurationMinutes is the interval rounded to whole minutes, never negative.
func DurationMinutes(start, end time.Time) int {
	minutes := math.Round(float64(end.Sub(start)) / float64(time.Minute))
	if minutes < 0 {
		return 0
	}
	return int(minutes)
}

var shiftLabelOrder = map[string]int{
	activity.ShiftGeneral: 0,
	activity.ShiftOne:     1,
	activity.ShiftTwo:     2,
}

// GroupByShift totals sessions per (shift date, shift label) and category.
// Input order does not matter. Groups are sorted newest shift date first,
// Unknown dates last, then by label. Negative durations count as zero.
func GroupByShift(sessions []activity.NormalizedSession, generalIdleLimit int) []activity.ShiftGroup {
	index := make(map[activity.Shift]int)
	groups := make([]activity.ShiftGroup, 0)

	for _, s := range sessions {
		key := activity.Shift{Date: s.ShiftDate, Label: s.ShiftLabel}
		i, ok := index[key]
		if !ok {
			totals := make(map[string]int, len(activity.Categories))
			for _, c := range activity.Categories {
				totals[c] = 0
			}
			groups = append(groups, activity.ShiftGroup{
				ShiftDate:  s.ShiftDate,
				ShiftLabel: s.ShiftLabel,
				Totals:     totals,
			})
			i = len(groups) - 1
			index[key] = i
		}

		d := s.Duration
		if d < 0 {
			d = 0
		}
		groups[i].Totals[s.Category] += d
		groups[i].TotalMinutes += d
		groups[i].SessionCount++
	}

	for i := range groups {
		groups[i].GeneralExceeded = groups[i].Totals[activity.CategoryGeneral] > generalIdleLimit
	}

	sort.SliceStable(groups, func(i, j int) bool {
		gi, gj := groups[i], groups[j]
		if gi.ShiftDate != gj.ShiftDate {
			if gi.ShiftDate == activity.ShiftDateUnknown {
				return false
			}
			if gj.ShiftDate == activity.ShiftDateUnknown {
				return true
			}
			return gi.ShiftDate > gj.ShiftDate
		}
		return shiftLabelOrder[gi.ShiftLabel] < shiftLabelOrder[gj.ShiftLabel]
	})

	return groups
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
