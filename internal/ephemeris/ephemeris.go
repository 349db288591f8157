// Package ephemeris is a thin, deterministic cgo wrapper over the Swiss
// Ephemeris C library. It is the sole component that talks to the native
// library (C1 in the design); everything above it deals only in Go values.
//
// The library keeps process-global state (loaded ephemeris files, the
// configured sidereal mode) and is not reentrant, so every exported call
// here is serialized behind a single package-level mutex.
package ephemeris

/*
#cgo CFLAGS: -w
#cgo LDFLAGS: -lm
#include "swephexp.h"
#include <stdlib.h>
*/
import "C"
import (
	"fmt"
	"sync"
	"unsafe"
)

// BodyId enumerates the ten solar-system bodies this core projects, in the
// stable wire order used throughout the package. The integer values are the
// Swiss Ephemeris body codes and must not be renumbered.
type BodyId int

const (
	Sun BodyId = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
)

// Obliquity is not a calculable body; it is requested from swe_calc_ut with
// the special body code -1, which returns obliquity/nutation data instead
// of a planetary position.
const obliquityBody = -1

// SiderealFlag mirrors config.SiderealFlag; duplicated as an untyped
// constant here so this package has no dependency on internal/config and
// stays a leaf in the build graph.
const SiderealFlag = 65536

// HouseSystemCampanus mirrors config.HouseSystemCampanus for the same
// leaf-package reason as SiderealFlag above.
const HouseSystemCampanus = 'C'

// bodyNames is the fixed presentation order for the ten bodies, index-aligned
// with BodyId.
var bodyNames = [10]string{
	"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto",
}

// String returns the canonical display name for a body.
func (b BodyId) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("BodyId(%d)", int(b))
	}
	return bodyNames[b]
}

// mu serializes every call into the Swiss Ephemeris library. The library's
// internal state (ephemeris path, sidereal mode) is process-global; callers
// needing parallelism must queue through this handle rather than calling
// concurrently.
var mu sync.Mutex

// SetEphePath tells the library where to find .se1 ephemeris data files.
// An empty path makes the library fall back to the lower-precision built-in
// Moshier ephemeris. Call once at process start.
func SetEphePath(path string) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	mu.Lock()
	defer mu.Unlock()
	C.swe_set_ephe_path(cpath)
}

// SetSidMode configures the sidereal ayanamsa. This core always uses
// Fagan/Allen (mode 0) with t0/ayanT0 both zero, fixed at process start.
func SetSidMode() {
	mu.Lock()
	defer mu.Unlock()
	C.swe_set_sid_mode(C.int32(0), C.double(0), C.double(0))
}

// Close releases all resources held by the library. Call once at process
// shutdown.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	C.swe_close()
}

// JulianDay converts a calendar date and UTC-equivalent decimal hour to a
// Julian Day number. gregorian selects the Gregorian (true) vs Julian
// (false) calendar; this core always passes true.
func JulianDay(year, month, day int, hourFraction float64, gregorian bool) float64 {
	flag := C.SE_GREG_CAL
	if !gregorian {
		flag = C.SE_JUL_CAL
	}
	mu.Lock()
	defer mu.Unlock()
	return float64(C.swe_julday(
		C.int(year), C.int(month), C.int(day),
		C.double(hourFraction), C.int32(flag),
	))
}

// BodyPosition holds the six doubles a calc_ut call returns for a body:
// ecliptic longitude/latitude/distance and their daily rates of change.
type BodyPosition struct {
	Longitude     float64
	Latitude      float64
	Distance      float64
	SpeedLon      float64
	SpeedLat      float64
	SpeedDistance float64
}

// CalcBody calculates the sidereal ecliptic position of a body at the given
// Julian Day (UT). Returns an error if the library reports a negative
// status code; callers treat this as a soft "ephemeris error" per §7 and
// keep the zero value rather than aborting the chart.
func CalcBody(jd float64, body BodyId) (BodyPosition, error) {
	return calc(jd, C.int(body))
}

// CalcObliquity calculates the true obliquity of the ecliptic at the given
// Julian Day, returned in BodyPosition.Longitude (xx[0] of swe_calc_ut with
// the special body code -1).
func CalcObliquity(jd float64) (BodyPosition, error) {
	return calc(jd, C.int(obliquityBody))
}

func calc(jd float64, body C.int) (BodyPosition, error) {
	var xx [6]C.double
	var serr [256]C.char

	const flags = C.SEFLG_SWIEPH | C.SEFLG_SPEED | SiderealFlag

	mu.Lock()
	ret := C.swe_calc_ut(
		C.double(jd),
		body,
		C.int32(flags),
		&xx[0],
		&serr[0],
	)
	mu.Unlock()

	if int(ret) < 0 {
		return BodyPosition{}, fmt.Errorf("swe_calc_ut(body=%d): %s", int(body), C.GoString(&serr[0]))
	}

	return BodyPosition{
		Longitude:     float64(xx[0]),
		Latitude:      float64(xx[1]),
		Distance:      float64(xx[2]),
		SpeedLon:      float64(xx[3]),
		SpeedLat:      float64(xx[4]),
		SpeedDistance: float64(xx[5]),
	}, nil
}

// AyanamsaUT returns the Fagan/Allen ayanamsa at the given Julian Day (UT).
// A negative status from the library is surfaced as an error; callers log
// it and continue with SVP left at its zero value (§7, ephemeris errors).
func AyanamsaUT(jd float64) (float64, error) {
	var daya C.double
	var serr [256]C.char

	mu.Lock()
	ret := C.swe_get_ayanamsa_ex_ut(
		C.double(jd),
		C.int32(SiderealFlag),
		&daya,
		&serr[0],
	)
	mu.Unlock()

	if int(ret) < 0 {
		return 0, fmt.Errorf("swe_get_ayanamsa_ex_ut: %s", C.GoString(&serr[0]))
	}
	return float64(daya), nil
}

// Houses holds the cusps and angle points returned by a Campanus house
// calculation. Cusps[0] is unused (cusps run 1..12, matching the library's
// own 1-based convention). Points follows swe_houses' ascmc layout:
// Points[0]=Ascendant, Points[1]=MC, Points[2]=ARMC, Points[3]=Vertex,
// Points[4]=Equatorial Ascendant.
type Houses struct {
	Cusps  [13]float64
	Points [10]float64
}

// CalcHouses calculates Campanus house cusps and angles for a given time and
// geographic location, in the sidereal zodiac (swe_houses_ex with the
// sidereal flag set) rather than the plain tropical swe_houses: the
// Ascendant/MC/cusps this core reports must already be sidereal, not
// tropical values the caller then has to re-anchor.
func CalcHouses(jd, geoLat, geoLon float64) (Houses, error) {
	var cusps [13]C.double
	var ascmc [10]C.double

	mu.Lock()
	ret := C.swe_houses_ex(
		C.double(jd),
		C.int32(SiderealFlag),
		C.double(geoLat),
		C.double(geoLon),
		C.int(HouseSystemCampanus),
		&cusps[0],
		&ascmc[0],
	)
	mu.Unlock()

	if int(ret) < 0 {
		return Houses{}, fmt.Errorf("swe_houses_ex failed (return code %d)", int(ret))
	}

	var h Houses
	for i := 0; i < 13; i++ {
		h.Cusps[i] = float64(cusps[i])
	}
	for i := 0; i < 10; i++ {
		h.Points[i] = float64(ascmc[i])
	}
	return h, nil
}
