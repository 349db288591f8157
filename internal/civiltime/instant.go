// Package civiltime provides the timezone-aware civil/UTC datetime pair
// (Instant) the core builds all its math on. Civil and UTC are kept in
// lock-step: callers present civil, internal math uses UTC.
//
// The blank import of time/tzdata embeds the IANA timezone database in the
// binary, so civil-to-UTC conversion for named zones (e.g. "America/New_York")
// does not depend on a zoneinfo database being present on the host.
package civiltime

import (
	"fmt"
	"time"

	_ "time/tzdata"
)

// Instant pairs a civil (local) time with its UTC projection. The two are
// always the same point in time expressed in two zones; NewInstant and
// InLocation are the only ways to move between them so they cannot drift apart.
type Instant struct {
	civil time.Time
}

// NewInstant builds an Instant from a civil (local) time. The time's own
// location is used as the civil zone; it need not already be UTC.
func NewInstant(civil time.Time) Instant {
	return Instant{civil: civil}
}

// ParseInLocation parses an ISO-8601-ish civil timestamp in the named IANA
// timezone. The layout matches a bare "YYYY-MM-DDTHH:MM:SS" or full RFC3339;
// callers supply whichever their request format uses.
func ParseInLocation(layout, value, tz string) (Instant, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Instant{}, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	t, err := time.ParseInLocation(layout, value, loc)
	if err != nil {
		return Instant{}, fmt.Errorf("invalid datetime %q: %w", value, err)
	}
	return Instant{civil: t}, nil
}

// Civil returns the local civil time.
func (i Instant) Civil() time.Time { return i.civil }

// UTC returns the UTC projection of the instant.
func (i Instant) UTC() time.Time { return i.civil.UTC() }

// OffsetHours returns the civil zone's UTC offset, in hours, at this instant
// (fractional for zones like +05:30, and DST-correct for zones with summer
// time transitions).
func (i Instant) OffsetHours() float64 {
	_, offsetSeconds := i.civil.Zone()
	return float64(offsetSeconds) / 3600
}

// DecimalHour returns the civil time's hour-of-day as a decimal, e.g.
// 14:30:00 -> 14.5.
func (i Instant) DecimalHour() float64 {
	h, m, s := i.civil.Clock()
	return float64(h) + float64(m)/60 + float64(s)/3600
}

// InLocation re-expresses this Instant's same point in time in a different
// IANA zone, preserving the UTC instant (used by relocate/precess).
func (i Instant) InLocation(tz string) (Instant, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Instant{}, fmt.Errorf("unknown timezone %q: %w", tz, err)
	}
	return Instant{civil: i.civil.In(loc)}, nil
}

// Add returns a new Instant offset by d, civil zone preserved (DST-correct:
// time.Time.Add operates on the absolute instant and keeps the Location, whose
// transition table the wall-clock fields are derived from).
func (i Instant) Add(d time.Duration) Instant {
	return Instant{civil: i.civil.Add(d)}
}

// Sub returns the duration between two instants (i - u), independent of
// either instant's civil zone.
func (i Instant) Sub(u Instant) time.Duration {
	return i.civil.Sub(u.civil)
}
