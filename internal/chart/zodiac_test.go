package chart_test

import (
	"math"
	"testing"

	"github.com/dcccxiii/siderealcore/internal/chart"
)

func TestZodiacSign(t *testing.T) {
	cases := []struct {
		lon     float64
		sign    string
		degrees float64
	}{
		{0.0, "Aries", 0.0},
		{30.0, "Taurus", 0.0},
		{60.0, "Gemini", 0.0},
		{90.0, "Cancer", 0.0},
		{120.0, "Leo", 0.0},
		{150.0, "Virgo", 0.0},
		{180.0, "Libra", 0.0},
		{210.0, "Scorpio", 0.0},
		{240.0, "Sagittarius", 0.0},
		{270.0, "Capricorn", 0.0},
		{300.0, "Aquarius", 0.0},
		{330.0, "Pisces", 0.0},
		{15.0, "Aries", 15.0},
		{45.5, "Taurus", 15.5},
		{29.999, "Aries", 29.999},
		{359.9, "Pisces", 29.9},
		{360.0, "Pisces", 30.0},
	}

	for _, tc := range cases {
		sign, deg := chart.ZodiacSign(tc.lon)
		if sign != tc.sign {
			t.Errorf("ZodiacSign(%.3f) sign = %q, want %q", tc.lon, sign, tc.sign)
		}
		if math.Abs(deg-tc.degrees) > 1e-9 {
			t.Errorf("ZodiacSign(%.3f) degrees = %v, want %v", tc.lon, deg, tc.degrees)
		}
	}
}
