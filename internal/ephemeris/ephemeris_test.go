package ephemeris_test

import (
	"math"
	"os"
	"testing"

	"github.com/dcccxiii/siderealcore/internal/ephemeris"
)

// TestMain points the library at EPHEMERIS_PATH, if set, and closes it when
// the suite finishes. An empty path makes the library fall back to the
// lower-precision built-in Moshier ephemeris, which is still correct to
// well within the tolerances used below.
func TestMain(m *testing.M) {
	ephemeris.SetEphePath(os.Getenv("EPHEMERIS_PATH"))
	ephemeris.SetSidMode()
	code := m.Run()
	ephemeris.Close()
	os.Exit(code)
}

func TestBodyId_String(t *testing.T) {
	cases := []struct {
		id   ephemeris.BodyId
		want string
	}{
		{ephemeris.Sun, "Sun"},
		{ephemeris.Moon, "Moon"},
		{ephemeris.Mercury, "Mercury"},
		{ephemeris.Venus, "Venus"},
		{ephemeris.Mars, "Mars"},
		{ephemeris.Jupiter, "Jupiter"},
		{ephemeris.Saturn, "Saturn"},
		{ephemeris.Uranus, "Uranus"},
		{ephemeris.Neptune, "Neptune"},
		{ephemeris.Pluto, "Pluto"},
	}
	for _, tc := range cases {
		if got := tc.id.String(); got != tc.want {
			t.Errorf("BodyId(%d).String() = %q, want %q", int(tc.id), got, tc.want)
		}
	}
}

func TestBodyId_String_OutOfRange(t *testing.T) {
	got := ephemeris.BodyId(99).String()
	if got != "BodyId(99)" {
		t.Errorf("BodyId(99).String() = %q, want %q", got, "BodyId(99)")
	}
}

func TestJulianDay_KnownEpochs(t *testing.T) {
	const epsilon = 1e-5

	cases := []struct {
		name              string
		year, month, day  int
		hour              float64
		want              float64
	}{
		{"J2000.0", 2000, 1, 1, 12.0, 2451545.0},
		{"Unix epoch", 1970, 1, 1, 0.0, 2440587.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ephemeris.JulianDay(tc.year, tc.month, tc.day, tc.hour, true)
			if math.Abs(got-tc.want) > epsilon {
				t.Errorf("JulianDay = %.6f, want %.6f", got, tc.want)
			}
		})
	}
}

func TestCalcBody_AllBodies(t *testing.T) {
	jd := ephemeris.JulianDay(2000, 1, 1, 12.0, true)

	bodies := []ephemeris.BodyId{
		ephemeris.Sun, ephemeris.Moon, ephemeris.Mercury, ephemeris.Venus,
		ephemeris.Mars, ephemeris.Jupiter, ephemeris.Saturn, ephemeris.Uranus,
		ephemeris.Neptune, ephemeris.Pluto,
	}

	for _, b := range bodies {
		t.Run(b.String(), func(t *testing.T) {
			pos, err := ephemeris.CalcBody(jd, b)
			if err != nil {
				t.Fatalf("CalcBody(%s) error: %v", b, err)
			}
			if pos.Longitude < 0 || pos.Longitude >= 360 {
				t.Errorf("%s longitude = %.4f°, want [0, 360)", b, pos.Longitude)
			}
		})
	}
}

func TestCalcObliquity_Range(t *testing.T) {
	jd := ephemeris.JulianDay(2019, 3, 19, 2.5, true)
	pos, err := ephemeris.CalcObliquity(jd)
	if err != nil {
		t.Fatalf("CalcObliquity: %v", err)
	}
	if pos.Longitude < 23 || pos.Longitude > 24 {
		t.Errorf("obliquity = %v, want roughly 23.4°", pos.Longitude)
	}
}

func TestAyanamsaUT_Range(t *testing.T) {
	jd := ephemeris.JulianDay(2019, 3, 19, 2.5, true)
	daya, err := ephemeris.AyanamsaUT(jd)
	if err != nil {
		t.Fatalf("AyanamsaUT: %v", err)
	}
	// Fagan/Allen ayanamsa circa 2019 is roughly 25 degrees.
	if daya < 24 || daya > 26 {
		t.Errorf("ayanamsa = %v, want roughly 25°", daya)
	}
}

func TestCalcHouses_ValidRanges(t *testing.T) {
	jd := ephemeris.JulianDay(2019, 3, 19, 2.5, true)

	h, err := ephemeris.CalcHouses(jd, 40.9792, -74.1169)
	if err != nil {
		t.Fatalf("CalcHouses: %v", err)
	}

	inRange := func(v float64) bool { return v >= 0 && v < 360 }
	if !inRange(h.Points[0]) {
		t.Errorf("Ascendant = %.4f°, want [0, 360)", h.Points[0])
	}
	if !inRange(h.Points[1]) {
		t.Errorf("MC = %.4f°, want [0, 360)", h.Points[1])
	}
	for i := 1; i <= 12; i++ {
		if !inRange(h.Cusps[i]) {
			t.Errorf("Cusps[%d] = %.4f°, want [0, 360)", i, h.Cusps[i])
		}
	}
}
