// Package sidereal builds the SiderealFramework: the handful of derived
// quantities (Julian Day, Local Sidereal Time, RAMC, SVP, obliquity) that
// every other computation in a chart depends on. Each step is a small pure
// function so it can be tested independently of the others.
package sidereal

import (
	"math"

	"github.com/dcccxiii/siderealcore/internal/ephemeris"
)

// Framework is an immutable snapshot of the time- and place-dependent
// quantities a chart is projected against.
//
// Invariants: RAMC == LST*15 exactly; SVP+ayanamsa == 30 by definition;
// LST is derived from UTC and geographic longitude, never latitude.
type Framework struct {
	GeoLongitude float64 // [-180, 180]
	GeoLatitude  float64 // [-90, 90]
	LST          float64 // hours, [0, 24)
	RAMC         float64 // degrees, LST*15
	SVP          float64 // degrees, [0, 30)
	Obliquity    float64 // degrees, [22, 25)
}

// JulianDay computes the Julian Day for a calendar date and decimal hour.
// gregorian is always true for civil dates in this core.
func JulianDay(year, month, day int, hourFraction float64) float64 {
	return ephemeris.JulianDay(year, month, day, hourFraction, true)
}

// LocalSiderealTime computes LST in hours, wrapped to [0, 24), from the
// civil date (used only to locate midnight of that date), the UTC decimal
// hour, and the geographic longitude. utHour is the civil decimal hour minus
// the civil UTC offset in effect at that moment (DST-correct), so it may fall
// outside [0, 24) when the UTC date differs from the civil date.
//
// Longitude, not latitude, is authoritative here — an earlier revision of
// this formula read from geographic latitude by mistake; that bug must not
// be reintroduced.
func LocalSiderealTime(year, month, day int, utHour, geoLongitude float64) float64 {
	jd0 := ephemeris.JulianDay(year, month, day, 0.0, true)
	t := (jd0 - 2451545.0) / 36525.0

	gst := 6.697374558 +
		2400.051336*t +
		0.000024862*t*t +
		utHour*1.0027379093

	lst := math.Mod(gst+geoLongitude/15, 24)
	if lst < 0 {
		lst += 24
	}
	return lst
}

// Ayanamsa returns the Fagan/Allen ayanamsa at the given Julian Day. Errors
// are soft (§7): the caller logs and proceeds with a zero ayanamsa, which
// SVP then turns into 30.
func Ayanamsa(jd float64) (float64, error) {
	return ephemeris.AyanamsaUT(jd)
}

// SVP converts an ayanamsa value into the Synetic Vernal Point: the anchor
// this core's precession formulae use, defined as 30 minus the ayanamsa.
func SVP(ayanamsa float64) float64 {
	return 30 - ayanamsa
}

// Obliquity returns the true obliquity of the ecliptic at the given Julian
// Day. Errors are soft; the caller logs and proceeds with a zero value.
func Obliquity(jd float64) (float64, error) {
	pos, err := ephemeris.CalcObliquity(jd)
	if err != nil {
		return 0, err
	}
	return pos.Longitude, nil
}

// RAMC returns the Right Ascension of the Medium Coeli for a given LST:
// LST times 15, exactly.
func RAMC(lst float64) float64 {
	return lst * 15
}

// Build assembles a complete Framework for a civil moment and location,
// along with the Julian Day the rest of the chart assembler needs for body
// and house calculations. It issues ephemeris calls in the fixed order
// JD -> ayanamsa -> obliquity, matching the ordering contract of a
// ChartAssembler run (§5).
//
// Ephemeris errors (negative status from the library) are returned
// alongside a best-effort Framework so the caller can log and continue: per
// §4.3, the assembled chart remains structurally valid even with a zeroed
// field.
func Build(year, month, day int, utHour, geoLongitude, geoLatitude float64) (fw Framework, jd float64, err error) {
	jd = JulianDay(year, month, day, utHour)
	lst := LocalSiderealTime(year, month, day, utHour, geoLongitude)

	var errs []error

	ayanamsa, ayErr := Ayanamsa(jd)
	if ayErr != nil {
		errs = append(errs, ayErr)
	}

	obliquity, obErr := Obliquity(jd)
	if obErr != nil {
		errs = append(errs, obErr)
	}

	fw = Framework{
		GeoLongitude: geoLongitude,
		GeoLatitude:  geoLatitude,
		LST:          lst,
		RAMC:         RAMC(lst),
		SVP:          SVP(ayanamsa),
		Obliquity:    obliquity,
	}

	if len(errs) > 0 {
		return fw, jd, errs[0]
	}
	return fw, jd, nil
}
