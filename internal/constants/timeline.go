package constants

// Timeline geometry. Positions are abstract vertical units; the TUI scales them
// down to terminal rows when rendering.
const (
	// UnitsPerTile is the fixed vertical spacing between consecutive habit tiles,
	// independent of the time gap between them.
	UnitsPerTile = 120

	// TimelinePadding is the padding at both timeline edges.
	TimelinePadding = 40

	// MinMarkerSpacing is the minimum spacing between labeled time markers.
	MinMarkerSpacing = 20

	// EmptyTimelineHeight is the fallback canvas height when no habits exist.
	EmptyTimelineHeight = 400
)

// Marker density thresholds in units per minute. Each tier includes all
// coarser tiers.
const (
	HalfHourDensity    = 0.2
	QuarterHourDensity = 0.4
	FiveMinuteDensity  = 0.8
	MinuteDensity      = 4.0
)
