package service_test

import (
	"os"
	"testing"

	"github.com/dcccxiii/siderealcore/internal/civiltime"
	"github.com/dcccxiii/siderealcore/internal/ephemeris"
	"github.com/dcccxiii/siderealcore/internal/service"
)

func TestMain(m *testing.M) {
	ephemeris.SetEphePath(os.Getenv("EPHEMERIS_PATH"))
	ephemeris.SetSidMode()
	code := m.Run()
	ephemeris.Close()
	os.Exit(code)
}

func mustInstant(t *testing.T, civil, tz string) civiltime.Instant {
	t.Helper()
	inst, err := civiltime.ParseInLocation("2006-01-02T15:04:05", civil, tz)
	if err != nil {
		t.Fatalf("ParseInLocation(%q, %q): %v", civil, tz, err)
	}
	return inst
}

func TestChartService_CreateChart(t *testing.T) {
	svc := service.New()
	inst := mustInstant(t, "2019-03-18T22:30:15", "America/New_York")

	c, err := svc.CreateChart(inst, -74.1169, 40.9792, "Hackensack")
	if err != nil {
		t.Fatalf("CreateChart: %v", err)
	}
	if c.PlaceName != "Hackensack" {
		t.Errorf("PlaceName = %q, want Hackensack", c.PlaceName)
	}
}

func TestChartService_GenerateReturnPairs(t *testing.T) {
	svc := service.New()
	radixInst := mustInstant(t, "2019-03-18T22:30:15", "America/New_York")
	radix, err := svc.CreateChart(radixInst, -74.1169, 40.9792, "Hackensack")
	if err != nil {
		t.Fatalf("CreateChart: %v", err)
	}

	anchor := mustInstant(t, "2019-03-24T10:00:00", "America/New_York")
	pairs, err := svc.GenerateReturnPairs(radix, -74.1169, 40.9792, anchor, "America/New_York", ephemeris.Moon, 4, 2)
	if err != nil {
		t.Fatalf("GenerateReturnPairs: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("len(pairs) = %d, want 2", len(pairs))
	}

	for i, p := range pairs {
		if p.Radix.Framework.LST != p.Return.Framework.LST {
			t.Errorf("pair %d: radix LST %v != return LST %v after precession", i, p.Radix.Framework.LST, p.Return.Framework.LST)
		}
	}
}

func TestChartService_Progressions(t *testing.T) {
	svc := service.New()
	radixInst := mustInstant(t, "2019-03-18T22:30:15", "America/New_York")
	radix, err := svc.CreateChart(radixInst, -74.1169, 40.9792, "Hackensack")
	if err != nil {
		t.Fatalf("CreateChart: %v", err)
	}

	target := mustInstant(t, "2029-03-18T22:30:15", "America/New_York")
	progressed, err := svc.Progressions(radix, target, -74.1169, 40.9792)
	if err != nil {
		t.Fatalf("Progressions: %v", err)
	}

	if !progressed.LocalDatetime.Equal(target.Civil()) {
		t.Errorf("progressed LocalDatetime = %v, want %v (the real target moment)", progressed.LocalDatetime, target.Civil())
	}
	if !progressed.UTCDatetime.Equal(target.UTC()) {
		t.Errorf("progressed UTCDatetime = %v, want %v", progressed.UTCDatetime, target.UTC())
	}
}

func TestChartService_TransitSensitiveBundle(t *testing.T) {
	svc := service.New()
	radixInst := mustInstant(t, "2019-03-18T22:30:15", "America/New_York")
	radix, err := svc.CreateChart(radixInst, -74.1169, 40.9792, "Hackensack")
	if err != nil {
		t.Fatalf("CreateChart: %v", err)
	}

	target := mustInstant(t, "2019-09-24T10:00:00", "Australia/Melbourne")
	bundle, err := svc.TransitSensitiveBundle(radix, target, 144.9666, -37.8166)
	if err != nil {
		t.Fatalf("TransitSensitiveBundle: %v", err)
	}

	if bundle.SSR.Ecliptic[ephemeris.Sun].Longitude < 0 || bundle.SSR.Ecliptic[ephemeris.Sun].Longitude >= 360 {
		t.Errorf("SSR Sun longitude out of range: %v", bundle.SSR.Ecliptic[ephemeris.Sun].Longitude)
	}
	if !bundle.Transits.UTCDatetime.Equal(target.UTC()) {
		t.Errorf("Transits UTCDatetime = %v, want %v", bundle.Transits.UTCDatetime, target.UTC())
	}
}
