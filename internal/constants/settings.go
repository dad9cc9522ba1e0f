package constants

const (
	// DefaultExpiryHours is how old a wake day may grow before it is
	// auto-completed.
	DefaultExpiryHours = 24

	// DefaultDurationMin is the default habit duration in minutes.
	DefaultDurationMin = 30

	// DefaultOffsetMin is the default wake-relative offset for dynamic habits.
	DefaultOffsetMin = 60

	// MinOffsetMin and MaxOffsetMin bound a habit's minutes-since-wake.
	// 0 is reserved for the wake marker and 1440 for the virtual end of day.
	MinOffsetMin = 1
	MaxOffsetMin = 1439

	// WarningLeadMin is the minimum warning window before a habit is due.
	WarningLeadMin = 10

	// StreakRateThreshold is the completion rate a day needs to count
	// toward the streak.
	StreakRateThreshold = 80

	// RefreshInterval is the wall-clock period, in seconds, of the periodic
	// highlighting/expiry tick.
	RefreshIntervalSec = 60

	// MaxTitleLength caps habit and sub-habit titles.
	MaxTitleLength = 100
)
