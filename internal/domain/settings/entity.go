package settings

import "time"

// Settings is the singleton dashboard configuration row.
type Settings struct {
	GeneralIdleLimit int
	UpdatedAt        *time.Time
}

// CategoryColors is the fixed palette the dashboard uses per session category.
var CategoryColors = map[string]string{
	"Official":  "#2563eb",
	"General":   "#f59e0b",
	"Namaz":     "#10b981",
	"AutoBreak": "#6b7280",
}

// MaxGeneralIdleLimit caps the limit at one day in minutes.
const MaxGeneralIdleLimit = 1440
