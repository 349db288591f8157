package chart

import (
	"github.com/dcccxiii/siderealcore/internal/civiltime"
	"github.com/dcccxiii/siderealcore/internal/logging"
	"github.com/dcccxiii/siderealcore/internal/projector"
	"github.com/dcccxiii/siderealcore/internal/sidereal"
)

// Relocate rebuilds a chart's place-dependent quantities (framework,
// mundane positions, right ascension, angles, cusps) against a new
// geographic location and timezone, while retaining the same ecliptic
// positions and the same instant. Ecliptic longitudes are place-invariant;
// mundane and house-based quantities are not, so only those are
// recomputed.
func Relocate(c Chart, newLon, newLat float64, newTZ string) (Chart, error) {
	out := c.Clone()

	localInNewTZ, err := civiltime.NewInstant(c.LocalDatetime).InLocation(newTZ)
	if err != nil {
		return Chart{}, err
	}
	out.LocalDatetime = localInNewTZ.Civil()

	y, m, d := localInNewTZ.Civil().Date()
	utHour := localInNewTZ.DecimalHour() - localInNewTZ.OffsetHours()

	fw, _, buildErr := sidereal.Build(y, int(m), d, utHour, newLon, newLat)
	if buildErr != nil {
		logging.L().Warn().Err(buildErr).Msg("soft ephemeris error relocating framework")
	}
	out.Framework = fw

	recomputeMundaneRAHousesAngles(&out)
	return out, nil
}

// Precess rebuilds a radix chart's place-dependent quantities against a
// transit chart's framework, projecting a fixed birth chart into the sky of
// the transit moment. The radix's ecliptic positions (its actual natal
// placements) and its own instant (UTCDatetime/JulianDay) are untouched;
// only the framework/mundane/RA/angles/cusps change, and LocalDatetime is
// re-labeled into the transit's timezone without moving the instant it
// names.
//
// Invariant (§8): after Precess(radix, transit), radix.Framework.LST ==
// transit.Framework.LST.
func Precess(radix, transit Chart) Chart {
	out := radix.Clone()

	out.Framework = transit.Framework

	relabeled, err := civiltime.NewInstant(radix.LocalDatetime).InLocation(transit.LocalDatetime.Location().String())
	if err != nil {
		logging.L().Warn().Err(err).Msg("soft error re-labeling radix timezone during precess")
	} else {
		out.LocalDatetime = relabeled.Civil()
	}

	out.Cusps = transit.Cusps
	out.Angles = cloneAngles(transit.Angles)

	recomputeMundaneRA(&out)
	return out
}

func recomputeMundaneRAHousesAngles(c *Chart) {
	recomputeMundaneRA(c)
	cusps, angles, err := projector.HousesAndAngles(c.JulianDay, c.Framework.GeoLatitude, c.Framework.GeoLongitude)
	if err != nil {
		logging.L().Warn().Err(err).Msg("soft ephemeris error recalculating houses during relocate")
		return
	}
	c.Cusps = cusps
	c.Angles = angles
}

func recomputeMundaneRA(c *Chart) {
	for i := range c.Ecliptic {
		e := c.Ecliptic[i]
		c.Mundane[i] = projector.PrimeVerticalLongitude(
			e.Longitude, e.Latitude, c.Framework.RAMC, c.Framework.Obliquity, c.Framework.SVP, c.Framework.GeoLatitude,
		)
		c.RightAscension[i] = projector.RightAscension(e.Longitude, e.Latitude, c.Framework.Obliquity, c.Framework.SVP)
	}
}

func cloneAngles(a projector.Angles) projector.Angles {
	out := make(projector.Angles, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}
