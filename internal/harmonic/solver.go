// Package harmonic implements the HarmonicReturnSolver (C6): nearest-return
// and successive-return search over time, by binary search to second
// precision.
package harmonic

import (
	"fmt"
	"math"
	"time"

	"github.com/dcccxiii/siderealcore/internal/config"
	"github.com/dcccxiii/siderealcore/internal/ephemeris"
	"github.com/dcccxiii/siderealcore/internal/sidereal"
)

// Precision is a time unit a binary search is allowed to bottom out at.
type Precision int

const (
	Seconds Precision = iota
	Minutes
	Hours
	Days
	Weeks
	Months
	Years
)

// duration returns the time.Duration one unit of p represents. Months and
// years are approximated as 30 and 365 days respectively. The unit is used
// for the whole of a FindInRange search, including its result; the solver's
// own searches (NearestReturn, GenerateSequence, refine) use only Hours and
// Seconds.
func (p Precision) duration() (time.Duration, error) {
	switch p {
	case Seconds:
		return time.Second, nil
	case Minutes:
		return time.Minute, nil
	case Hours:
		return time.Hour, nil
	case Days:
		return 24 * time.Hour, nil
	case Weeks:
		return 7 * 24 * time.Hour, nil
	case Months:
		return 30 * 24 * time.Hour, nil
	case Years:
		return 365 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unknown precision unit %d", int(p))
	}
}

// ArgumentError reports a fatal, argument-validation failure raised before
// any search begins (§7).
type ArgumentError struct {
	msg string
}

func (e *ArgumentError) Error() string { return e.msg }

func argErr(format string, args ...any) error {
	return &ArgumentError{msg: fmt.Sprintf(format, args...)}
}

// SearchError reports a fatal failure to locate a return within a
// projected window (§7). Never caught internally.
type SearchError struct {
	Body        string
	WindowStart time.Time
	WindowEnd   time.Time
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("no %s return found in window [%s, %s]", e.Body, e.WindowStart, e.WindowEnd)
}

// ValidateHarmonic checks harmonic/body/precision arguments per §4.5 and
// §7, before any search runs.
func ValidateHarmonic(body ephemeris.BodyId, n int, precision Precision) error {
	if n < 1 || n > 36 {
		return argErr("harmonic %d out of range [1, 36]", n)
	}
	if body == ephemeris.Moon && n > 4 {
		return argErr("harmonic %d invalid for Moon (max 4)", n)
	}
	if _, err := precision.duration(); err != nil {
		return argErr("%v", err)
	}
	return nil
}

// ValidHarmonicPositions returns the n evenly-spaced points generated by a
// natal longitude at the given harmonic: {(lambda0 + k*(360/n)) mod 360 :
// k = 1..n}. For n=1 this is just lambda0.
func ValidHarmonicPositions(lambda0 float64, n int) []float64 {
	step := 360.0 / float64(n)
	out := make([]float64, n)
	for k := 1; k <= n; k++ {
		out[k-1] = normalize(lambda0 + float64(k)*step)
	}
	return out
}

// ClosestHarmonicPos returns the valid harmonic position of lambda0 (at
// harmonic n) nearest a probe longitude, by absolute arithmetic distance
// (not wrapped).
func ClosestHarmonicPos(lambda0, probe float64, n int) float64 {
	positions := ValidHarmonicPositions(lambda0, n)
	best := positions[0]
	bestDist := math.Abs(probe - best)
	for _, p := range positions[1:] {
		d := math.Abs(probe - p)
		if d < bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

// IsPast reports whether the transiting longitude lambdaP has passed its
// closest harmonic position in the forward direction. If the two are more
// than half a harmonic-slice apart, they sit on opposite sides of the
// 360/0 wrap seam and the naive comparison is inverted.
func IsPast(lambdaP, lambda0 float64, n int) bool {
	c := ClosestHarmonicPos(lambda0, lambdaP, n)
	d := math.Abs(lambdaP - c)
	past := lambdaP > c
	if d > (360.0/float64(n))/2 {
		past = !past
	}
	return past
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Probe returns a body's ecliptic (sidereal) longitude at a UTC instant.
func Probe(body ephemeris.BodyId, utc time.Time) (float64, error) {
	y, m, d := utc.Date()
	hourFraction := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600
	jd := sidereal.JulianDay(y, int(m), d, hourFraction)
	pos, err := ephemeris.CalcBody(jd, body)
	if err != nil {
		return 0, err
	}
	return pos.Longitude, nil
}

// FindInRange performs the binary search described in §4.5: the right edge
// of the window is first widened (by whole hours) until the target
// harmonic position has provably been passed, then the integer
// unit-offsets into [start, end] are halved until the search converges to
// a single instant at the requested precision.
func FindInRange(body ephemeris.BodyId, lambda0 float64, n int, start, end time.Time, precision Precision) (time.Time, error) {
	if err := ValidateHarmonic(body, n, precision); err != nil {
		return time.Time{}, err
	}

	for {
		lonEnd, err := Probe(body, end)
		if err != nil {
			return time.Time{}, err
		}
		if IsPast(lonEnd, lambda0, n) {
			break
		}
		end = end.Add(time.Hour)
	}

	unit, err := precision.duration()
	if err != nil {
		return time.Time{}, err
	}

	totalUnits := int(end.Sub(start) / unit)
	if totalUnits < 0 {
		return time.Time{}, &SearchError{Body: body.String(), WindowStart: start, WindowEnd: end}
	}

	floor, ceil := 0, totalUnits
	var mid int
	for ceil > floor {
		mid = (floor + ceil) / 2
		t := start.Add(time.Duration(mid) * unit)
		lon, err := Probe(body, t)
		if err != nil {
			return time.Time{}, err
		}
		if IsPast(lon, lambda0, n) {
			ceil = mid
		} else {
			floor = mid + 1
		}
	}

	return start.Add(time.Duration(floor) * unit), nil
}

// NearestReturn finds the return (to harmonic n of lambda0) closest to an
// anchor instant, by searching a backward and a forward window each sized
// to one harmonic period of the body's orbit, at hour precision, and
// picking whichever hit is closer to the anchor.
func NearestReturn(body ephemeris.BodyId, lambda0 float64, n int, anchor time.Time) (time.Time, error) {
	if err := ValidateHarmonic(body, n, Hours); err != nil {
		return time.Time{}, err
	}

	periodMinutes, ok := config.OrbitalPeriodMinutes[body.String()]
	if !ok {
		return time.Time{}, argErr("no orbital period known for %s", body)
	}
	deltaHours := time.Duration(math.Ceil(periodMinutes/float64(n)/60)) * time.Hour

	backStart := anchor.Add(-deltaHours)
	backHit, backErr := FindInRange(body, lambda0, n, backStart, anchor, Hours)

	fwdEnd := anchor.Add(deltaHours)
	fwdHit, fwdErr := FindInRange(body, lambda0, n, anchor, fwdEnd, Hours)

	switch {
	case backErr != nil && fwdErr != nil:
		return time.Time{}, &SearchError{Body: body.String(), WindowStart: backStart, WindowEnd: fwdEnd}
	case backErr != nil:
		return fwdHit, nil
	case fwdErr != nil:
		return backHit, nil
	}

	if anchor.Sub(backHit) <= fwdHit.Sub(anchor) {
		return backHit, nil
	}
	return fwdHit, nil
}

// GenerateSequence produces qty successive return instants of a harmonic
// return, starting from the return nearest the anchor instant: the first
// hit is located by NearestReturn, then each subsequent hit steps forward
// by approximately one harmonic period (minus a day, per the legacy
// solver's empirical offset) and is refined to second precision within a
// narrow window around the estimate.
func GenerateSequence(body ephemeris.BodyId, lambda0 float64, n int, anchor time.Time, qty int) ([]time.Time, error) {
	if err := ValidateHarmonic(body, n, Seconds); err != nil {
		return nil, err
	}

	periodMinutes, ok := config.OrbitalPeriodMinutes[body.String()]
	if !ok {
		return nil, argErr("no orbital period known for %s", body)
	}

	first, err := NearestReturn(body, lambda0, n, anchor)
	if err != nil {
		return nil, err
	}
	first, err = refine(body, lambda0, n, first)
	if err != nil {
		return nil, err
	}

	out := make([]time.Time, 0, qty)
	out = append(out, first)

	stepMinutes := periodMinutes/float64(n) - 24*60
	step := time.Duration(stepMinutes) * time.Minute
	half := step / 2
	if half < 0 {
		half = -half
	}

	prev := first
	for len(out) < qty {
		estimate := prev.Add(step)
		windowStart := estimate.Add(-half)
		windowEnd := estimate.Add(half)

		hit, err := FindInRange(body, lambda0, n, windowStart, windowEnd, Seconds)
		if err != nil {
			return nil, &SearchError{Body: body.String(), WindowStart: windowStart, WindowEnd: windowEnd}
		}
		out = append(out, hit)
		prev = hit
	}

	return out, nil
}

// refine narrows an hour-precise hit to seconds precision by searching a
// few hours around it (§4.5, step 3).
func refine(body ephemeris.BodyId, lambda0 float64, n int, hourHit time.Time) (time.Time, error) {
	const margin = 3 * time.Hour
	return FindInRange(body, lambda0, n, hourHit.Add(-margin), hourHit.Add(margin), Seconds)
}
