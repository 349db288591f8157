package chart

import (
	"fmt"

	"github.com/dcccxiii/siderealcore/internal/civiltime"
	"github.com/dcccxiii/siderealcore/internal/ephemeris"
	"github.com/dcccxiii/siderealcore/internal/logging"
	"github.com/dcccxiii/siderealcore/internal/projector"
	"github.com/dcccxiii/siderealcore/internal/sidereal"
)

// bodyOrder is the fixed BodyId iteration order used when populating a
// chart's per-body arrays, matching §3's BodyId table exactly.
var bodyOrder = [numBodies]BodyId{
	ephemeris.Sun, ephemeris.Moon, ephemeris.Mercury, ephemeris.Venus, ephemeris.Mars,
	ephemeris.Jupiter, ephemeris.Saturn, ephemeris.Uranus, ephemeris.Neptune, ephemeris.Pluto,
}

// Assemble builds a fully-populated Chart for a civil moment at an
// explicit geographic location. Ephemeris calls are issued in the fixed
// order JD -> ayanamsa -> obliquity -> bodies 0..9 -> houses (§5); a soft
// ephemeris error on any individual call is logged and leaves that field
// at its zero value rather than aborting the chart, per §4.3 and §7.
func Assemble(local civiltime.Instant, lon, lat float64, placeName string) (Chart, error) {
	civil := local.Civil()
	y, m, d := civil.Date()
	utHour := local.DecimalHour() - local.OffsetHours()

	fw, jd, buildErr := sidereal.Build(y, int(m), d, utHour, lon, lat)
	if buildErr != nil {
		logging.L().Warn().Err(buildErr).Float64("julian_day", jd).Msg("soft ephemeris error building framework")
	}

	c := Chart{
		LocalDatetime: civil,
		UTCDatetime:   local.UTC(),
		JulianDay:     jd,
		Framework:     fw,
		PlaceName:     placeName,
	}

	for i, body := range bodyOrder {
		pos, err := ephemeris.CalcBody(jd, body)
		if err != nil {
			logging.L().Warn().Err(err).Str("body", body.String()).Float64("julian_day", jd).
				Msg("soft ephemeris error calculating body position")
			continue
		}
		c.Ecliptic[i] = EclipticCoords{
			Longitude:     pos.Longitude,
			Latitude:      pos.Latitude,
			Distance:      pos.Distance,
			SpeedLon:      pos.SpeedLon,
			SpeedLat:      pos.SpeedLat,
			SpeedDistance: pos.SpeedDistance,
		}
	}

	projectMundaneAndRA(&c)

	cusps, angles, housesErr := projector.HousesAndAngles(jd, lat, lon)
	if housesErr != nil {
		logging.L().Warn().Err(housesErr).Float64("julian_day", jd).Msg("soft ephemeris error calculating houses")
	} else {
		c.Cusps = cusps
		c.Angles = angles
	}

	return c, nil
}

// projectMundaneAndRA fills Mundane and RightAscension from the already-
// populated Ecliptic array and framework, per §4.2.
func projectMundaneAndRA(c *Chart) {
	for i := range c.Ecliptic {
		e := c.Ecliptic[i]
		c.Mundane[i] = projector.PrimeVerticalLongitude(
			e.Longitude, e.Latitude, c.Framework.RAMC, c.Framework.Obliquity, c.Framework.SVP, c.Framework.GeoLatitude,
		)
		c.RightAscension[i] = projector.RightAscension(e.Longitude, e.Latitude, c.Framework.Obliquity, c.Framework.SVP)
	}
}

// BodyIndex resolves a body's canonical name ("Sun", "Moon", ...) to its
// BodyId, for callers that only have a name (e.g. a harmonic-return
// request).
func BodyIndex(name string) (BodyId, error) {
	for _, b := range bodyOrder {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", name)
}
