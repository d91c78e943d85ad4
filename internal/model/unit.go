package model

import "time"

// DurationUnit is the consumer-chosen unit of Program.Duration
type DurationUnit string

const (
	// UnitSeconds reads Duration as seconds
	UnitSeconds DurationUnit = "s"

	// UnitMilliseconds reads Duration as milliseconds
	UnitMilliseconds DurationUnit = "ms"

	// UnitMinutes reads Duration as minutes
	UnitMinutes DurationUnit = "min"
)

// DefaultDurationUnit is used when no unit is configured
const DefaultDurationUnit = UnitSeconds

// String returns the string representation of DurationUnit
func (u DurationUnit) String() string {
	return string(u)
}

// IsValid returns true for a known unit
func (u DurationUnit) IsValid() bool {
	return u == UnitSeconds || u == UnitMilliseconds || u == UnitMinutes
}

// Scale returns the length of one unit. Unknown units count as seconds.
func (u DurationUnit) Scale() time.Duration {
	switch u {
	case UnitMilliseconds:
		return time.Millisecond
	case UnitMinutes:
		return time.Minute
	default:
		return time.Second
	}
}

// DurationUnits lists the supported units
func DurationUnits() []DurationUnit {
	return []DurationUnit{UnitSeconds, UnitMilliseconds, UnitMinutes}
}
