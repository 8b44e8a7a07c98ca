package activity

import (
	"time"
)

// Idle log statuses reported by the monitoring agent.
const (
	StatusActive    = "Active"
	StatusIdle      = "Idle"
	StatusAutoBreak = "AutoBreak"
	StatusUnknown   = "Unknown"
)

// Idle categories chosen by the employee when explaining an idle period.
const (
	CategoryOfficial      = "Official"
	CategoryGeneral       = "General"
	CategoryNamaz         = "Namaz"
	CategoryUncategorized = "Uncategorized"
	CategoryAutoBreak     = "AutoBreak"
)

// Categories lists every category a normalized session can carry, in display order.
var Categories = []string{
	CategoryOfficial,
	CategoryGeneral,
	CategoryNamaz,
	CategoryUncategorized,
	CategoryAutoBreak,
}

// IdleCategories are the categories an agent may submit for an idle log.
var IdleCategories = []string{
	CategoryOfficial,
	CategoryGeneral,
	CategoryNamaz,
	CategoryUncategorized,
}

// Shift labels.
const (
	ShiftGeneral = "General"
	ShiftOne     = "Shift 1 (6 PM – 3 AM)"
	ShiftTwo     = "Shift 2 (9 PM – 6 AM)"
)

// Display sentinels.
const (
	ShiftDateUnknown = "Unknown"
	LocalTimeOngoing = "Ongoing"
	LocalTimeNA      = "N/A"
	AutoBreakReason  = "System Power Off / Startup"
)

const (
	// LocalTimeLayout is the wall-clock format of start/end display strings.
	LocalTimeLayout = "15:04:05"
	// ShiftDateLayout is the ISO date format of a shift date.
	ShiftDateLayout = "2006-01-02"
)

// IdleRecord is one observed idle or active interval.
// A nil IdleEnd means the interval is still open.
type IdleRecord struct {
	ID        string
	User      string
	Status    string
	Reason    string
	Category  string
	Timestamp time.Time
	IdleStart *time.Time
	IdleEnd   *time.Time
}

// AutoBreakRecord is a break the agent inferred from the machine being off.
// DurationMinutes is fixed at write time and is authoritative.
type AutoBreakRecord struct {
	ID              string
	User            string
	Status          string
	BreakStart      *time.Time
	BreakEnd        *time.Time
	DurationMinutes int
	Timestamp       time.Time
}

// SessionKind discriminates the source of a NormalizedSession.
type SessionKind string

const (
	SessionKindIdle      SessionKind = "Idle"
	SessionKindAutoBreak SessionKind = "AutoBreak"
)

// Shift is the result of classifying an instant.
type Shift struct {
	Date  string `json:"shiftDate"`
	Label string `json:"shiftLabel"`
}

// NormalizedSession is the display shape shared by idle sessions and auto-breaks.
type NormalizedSession struct {
	Kind           SessionKind `json:"kind"`
	IdleStart      *time.Time  `json:"idle_start"`
	IdleEnd        *time.Time  `json:"idle_end"`
	StartTimeLocal string      `json:"start_time_local"`
	EndTimeLocal   string      `json:"end_time_local"`
	Reason         string      `json:"reason"`
	Category       string      `json:"category"`
	Duration       int         `json:"duration"`
	ShiftDate      string      `json:"shiftDate"`
	ShiftLabel     string      `json:"shiftLabel"`
}

// ShiftGroup totals one employee's sessions for a single shift occurrence.
type ShiftGroup struct {
	ShiftDate       string         `json:"shiftDate"`
	ShiftLabel      string         `json:"shiftLabel"`
	Totals          map[string]int `json:"totals"`
	TotalMinutes    int            `json:"total_minutes"`
	SessionCount    int            `json:"session_count"`
	GeneralExceeded bool           `json:"general_exceeded"`
}
