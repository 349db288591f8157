// Package chart implements the Chart value type and the two components
// that build and rewrite it: the ChartAssembler (C4) and the
// ChartTransformer (C5).
package chart

import (
	"time"

	"github.com/dcccxiii/siderealcore/internal/ephemeris"
	"github.com/dcccxiii/siderealcore/internal/projector"
	"github.com/dcccxiii/siderealcore/internal/sidereal"
)

// BodyId re-exports ephemeris.BodyId so callers outside this package need
// not import ephemeris directly to index a Chart.
type BodyId = ephemeris.BodyId

const numBodies = 10

// EclipticCoords holds the six scalars §3 specifies per body. Only
// Longitude and Latitude drive downstream math; the rest are preserved for
// observers.
type EclipticCoords struct {
	Longitude     float64
	Latitude      float64
	Distance      float64
	SpeedLon      float64
	SpeedLat      float64
	SpeedDistance float64
}

// Chart owns all of its sub-maps; no back-references exist between charts.
// All of them but Angles are held by value; Angles is a map, so a plain
// struct copy shares it, and Clone is the way to get an independent copy.
type Chart struct {
	LocalDatetime time.Time
	UTCDatetime   time.Time
	JulianDay     float64

	Framework sidereal.Framework

	// Ecliptic, Mundane, and RightAscension are fixed-size arrays indexed by
	// BodyId rather than maps keyed by name: this makes iteration order
	// definitional and each Chart's storage for them independent, avoiding
	// the aliasing bug an earlier, module-level dict invited.
	Ecliptic       [numBodies]EclipticCoords
	Mundane        [numBodies]projector.Mundane
	RightAscension [numBodies]float64

	Cusps  [13]float64
	Angles projector.Angles

	PlaceName string // empty means absent
}

// Body returns the ecliptic coordinates, mundane position, and right
// ascension for a given body, as a convenience over indexing the three
// arrays directly.
func (c *Chart) Body(b BodyId) (EclipticCoords, projector.Mundane, float64) {
	return c.Ecliptic[b], c.Mundane[b], c.RightAscension[b]
}

// Clone returns an independent deep copy of the chart. Every field but
// Angles is a value type or a fixed-size array of value types, so a plain
// struct copy handles those; Angles is a map and needs its own copy so two
// clones never share the same underlying storage.
func (c Chart) Clone() Chart {
	out := c
	out.Angles = cloneAngles(c.Angles)
	return out
}
