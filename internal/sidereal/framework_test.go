package sidereal_test

import (
	"math"
	"testing"

	"github.com/dcccxiii/siderealcore/internal/sidereal"
)

func TestJulianDay_J2000(t *testing.T) {
	got := sidereal.JulianDay(2000, 1, 1, 12.0)
	const want = 2451545.0
	if math.Abs(got-want) > 1e-5 {
		t.Errorf("JulianDay = %.6f, want %.6f", got, want)
	}
}

func TestLocalSiderealTime_Hackensack(t *testing.T) {
	// 2019-03-18 22:30:15 America/New_York (EDT, UTC-4) == 2019-03-19 02:30:15 UTC.
	utHour := 2 + 30.0/60 + 15.0/3600
	got := sidereal.LocalSiderealTime(2019, 3, 19, utHour, -74.1169)

	const want = 9.325
	const tol = 0.01
	if math.Abs(got-want) > tol {
		t.Errorf("LocalSiderealTime = %.4f, want %.4f ± %v", got, want, tol)
	}
}

func TestLocalSiderealTime_Melbourne(t *testing.T) {
	// 2019-03-18 22:30:15 Australia/Melbourne (AEDT, UTC+11) == 2019-03-18 11:30:15 UTC.
	utHour := 11 + 30.0/60 + 15.0/3600
	got := sidereal.LocalSiderealTime(2019, 3, 18, utHour, 144.9666)

	const want = 8.884
	const tol = 0.01
	if math.Abs(got-want) > tol {
		t.Errorf("LocalSiderealTime = %.4f, want %.4f ± %v", got, want, tol)
	}
}

func TestLocalSiderealTime_WrapsToNonNegative(t *testing.T) {
	got := sidereal.LocalSiderealTime(2019, 1, 1, 0, -179.9)
	if got < 0 || got >= 24 {
		t.Errorf("LocalSiderealTime = %v, want [0, 24)", got)
	}
}

func TestSVP(t *testing.T) {
	if got := sidereal.SVP(25.009); math.Abs(got-4.991) > 1e-6 {
		t.Errorf("SVP(25.009) = %v, want 4.991", got)
	}
}

func TestRAMC(t *testing.T) {
	if got := sidereal.RAMC(9.325); math.Abs(got-139.875) > 1e-9 {
		t.Errorf("RAMC(9.325) = %v, want 139.875", got)
	}
}

func TestDMS(t *testing.T) {
	cases := []struct {
		decimal            float64
		degree, min, secnd int
	}{
		{15.5, 15, 30, 0},
		{0.25, 0, 15, 0},
		{-15.5, -15, 30, 0},
		{23.436, 23, 26, 9},
	}

	for _, tc := range cases {
		d, m, s := sidereal.DMS(tc.decimal)
		if d != tc.degree || m != tc.min || s != tc.secnd {
			t.Errorf("DMS(%v) = (%d,%d,%d), want (%d,%d,%d)", tc.decimal, d, m, s, tc.degree, tc.min, tc.secnd)
		}
	}
}
