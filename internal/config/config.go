// Package config holds the process-wide constants the core is built around.
// None of these are per-request configurable; they are the fixed contract
// between this core and the underlying ephemeris library.
package config

import "os"

// SiderealFlag is the Swiss Ephemeris bit requesting sidereal-zodiac
// positions (64*1024). Combined with every calc_ut / houses call.
const SiderealFlag = 65536

// HouseSystemCampanus is the Swiss Ephemeris house-system identifier for
// Campanus houses, ASCII 'C' (67). This core supports no other system.
const HouseSystemCampanus = 'C'

// Q2 is the secondary-progression rate: one sidereal day's excess over one
// solar day, expressed as minutes-of-progressed-time per minute-of-real-time.
const Q2 = 0.002737909

// TertiaryRate is the tertiary-progression rate. Reserved: no operation in
// this core currently consumes it, but it is part of the process-wide
// constant table carried over from the legacy settings module.
const TertiaryRate = 0.0366009950851544

// OrbitalPeriodMinutes gives each body's sidereal orbital period in minutes,
// used by the harmonic return solver to estimate search-window widths. Only
// Sun and Moon have harmonic returns defined (§4.5); other bodies are absent.
var OrbitalPeriodMinutes = map[string]float64{
	"Sun":  525968,
	"Moon": 39344,
}

// EphemerisPath returns the configured path to the Swiss Ephemeris data
// files, read from the EPHEMERIS_PATH environment variable on each call. An
// empty string tells the library
// to fall back to its built-in Moshier approximation.
func EphemerisPath() string {
	return os.Getenv("EPHEMERIS_PATH")
}
