// Package projector implements the pure coordinate-projection math of the
// chart projector (C3): prime-vertical (Campanus mundane) longitude,
// precessed right ascension, and house/angle derivation. Every function
// here is a pure function of its arguments — no ephemeris calls, no
// package-level state.
package projector

import (
	"math"

	"github.com/dcccxiii/siderealcore/internal/ephemeris"
)

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

// Mundane holds a body's position in Campanus-house coordinates.
type Mundane struct {
	House int     // 1..12
	PVL   float64 // prime-vertical longitude, [0, 360)
}

// PrimeVerticalLongitude computes a body's Campanus house and
// prime-vertical longitude. Variable names (theta, ax, ay, decl, alpha,
// hourAngle, cz, cx) mirror the legacy solunar spreadsheet this algebra is
// transcribed from; they do not have conventional astronomical names of
// their own, and renaming them would make the formula harder to check
// against that source.
func PrimeVerticalLongitude(eclLon, eclLat, ramc, obliquity, svp, geoLat float64) Mundane {
	theta := eclLon + (360 - (330 + svp))

	ax := math.Cos(radians(theta))

	decl := degrees(math.Asin(
		math.Sin(radians(eclLat))*math.Cos(radians(obliquity)) +
			math.Cos(radians(eclLat))*math.Sin(radians(obliquity))*math.Sin(radians(theta)),
	))

	ay := math.Sin(radians(theta))*math.Cos(radians(obliquity)) -
		math.Tan(radians(eclLat))*math.Sin(radians(obliquity))

	alpha0 := degrees(math.Atan(ay / ax))

	var alpha float64
	switch {
	case ax < 0:
		alpha = alpha0 + 180
	case ay < 0:
		alpha = alpha0 + 360
	default:
		alpha = alpha0
	}

	hourAngle := ramc - alpha

	cz := degrees(math.Atan(1 / (
		math.Cos(radians(geoLat))/math.Tan(radians(hourAngle)) +
			math.Sin(radians(geoLat))*math.Tan(radians(decl))/math.Sin(radians(hourAngle)))))

	cx := math.Cos(radians(geoLat))*math.Cos(radians(hourAngle)) +
		math.Sin(radians(geoLat))*math.Tan(radians(decl))

	var pvl float64
	if cx < 0 {
		pvl = 90 - cz
	} else {
		pvl = 270 - cz
	}

	return Mundane{
		House: int(math.Floor(pvl/30)) + 1,
		PVL:   normalize(pvl),
	}
}

// RightAscension computes a body's precessed right ascension, using the
// same SVP-anchored precession offset as PrimeVerticalLongitude.
func RightAscension(eclLon, eclLat, obliquity, svp float64) float64 {
	tau := eclLon + 360 - (330 + svp)

	ay := math.Sin(radians(tau))*math.Cos(radians(obliquity)) -
		math.Tan(radians(eclLat))*math.Sin(radians(obliquity))
	ax := math.Cos(radians(tau))

	alpha0 := degrees(math.Atan(ay / ax))

	switch {
	case ax < 0:
		return normalize(alpha0 + 180)
	case ay < 0:
		return normalize(alpha0 + 360)
	default:
		return normalize(alpha0)
	}
}

// Angles holds the chart's derived angles, keyed by name. AngleAsc,
// AngleMC, and AngleEqAsc come directly from the house calculation;
// the rest are derived in this component per §4.2.
type Angles map[string]float64

const (
	AngleAsc   = "Asc"
	AngleDsc   = "Dsc"
	AngleMC    = "MC"
	AngleIC    = "IC"
	AngleEqAsc = "Eq Asc"
	AngleEqDsc = "Eq Dsc"
	AngleEP    = "EP"
	AngleZen   = "Zen"
	AngleWP    = "WP"
	AngleNdr   = "Ndr"
)

// HousesAndAngles calls the Campanus house calculation and derives the
// full set of secondary angles from it.
func HousesAndAngles(jd, geoLat, geoLon float64) (cusps [13]float64, angles Angles, err error) {
	h, err := ephemeris.CalcHouses(jd, geoLat, geoLon)
	if err != nil {
		return cusps, nil, err
	}

	asc := h.Points[0]
	mc := h.Points[1]
	eqAsc := h.Points[4]

	angles = Angles{
		AngleAsc:   asc,
		AngleMC:    mc,
		AngleDsc:   normalize(asc + 180),
		AngleIC:    normalize(mc + 180),
		AngleEqAsc: eqAsc,
		AngleEqDsc: normalize(eqAsc + 180),
	}
	angles[AngleEP] = normalize(angles[AngleMC] + 90)
	angles[AngleZen] = normalize(angles[AngleDsc] + 90)
	angles[AngleWP] = normalize(angles[AngleIC] + 90)
	angles[AngleNdr] = normalize(angles[AngleAsc] + 90)

	return h.Cusps, angles, nil
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
