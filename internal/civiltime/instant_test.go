package civiltime_test

import (
	"math"
	"testing"
	"time"

	"github.com/dcccxiii/siderealcore/internal/civiltime"
)

func TestParseInLocation(t *testing.T) {
	inst, err := civiltime.ParseInLocation("2006-01-02T15:04:05", "2019-03-18T22:30:15", "America/New_York")
	if err != nil {
		t.Fatalf("ParseInLocation: %v", err)
	}

	civil := inst.Civil()
	if civil.Year() != 2019 || civil.Month() != time.March || civil.Day() != 18 {
		t.Errorf("civil date = %v, want 2019-03-18", civil)
	}
	if civil.Hour() != 22 || civil.Minute() != 30 || civil.Second() != 15 {
		t.Errorf("civil time = %v, want 22:30:15", civil)
	}

	// Hackensack is EDT (UTC-4) on 2019-03-18.
	utc := inst.UTC()
	want := time.Date(2019, 3, 19, 2, 30, 15, 0, time.UTC)
	if !utc.Equal(want) {
		t.Errorf("UTC = %v, want %v", utc, want)
	}
}

func TestParseInLocation_UnknownZone(t *testing.T) {
	if _, err := civiltime.ParseInLocation("2006-01-02T15:04:05", "2019-03-18T22:30:15", "Not/AZone"); err == nil {
		t.Fatal("expected error for unknown timezone, got nil")
	}
}

func TestParseInLocation_BadLayout(t *testing.T) {
	if _, err := civiltime.ParseInLocation("2006-01-02T15:04:05", "not-a-date", "UTC"); err == nil {
		t.Fatal("expected error for malformed datetime, got nil")
	}
}

func TestOffsetHoursAndDecimalHour(t *testing.T) {
	inst, err := civiltime.ParseInLocation("2006-01-02T15:04:05", "2019-03-18T22:30:15", "America/New_York")
	if err != nil {
		t.Fatalf("ParseInLocation: %v", err)
	}

	if got := inst.OffsetHours(); got != -4 {
		t.Errorf("OffsetHours() = %v, want -4 (EDT)", got)
	}

	want := 22 + 30.0/60 + 15.0/3600
	if got := inst.DecimalHour(); math.Abs(got-want) > 1e-9 {
		t.Errorf("DecimalHour() = %v, want %v", got, want)
	}
}

func TestInLocation_PreservesInstant(t *testing.T) {
	inst, err := civiltime.ParseInLocation("2006-01-02T15:04:05", "2019-03-18T22:30:15", "America/New_York")
	if err != nil {
		t.Fatalf("ParseInLocation: %v", err)
	}

	melbourne, err := inst.InLocation("Australia/Melbourne")
	if err != nil {
		t.Fatalf("InLocation: %v", err)
	}

	if !inst.UTC().Equal(melbourne.UTC()) {
		t.Errorf("InLocation changed the underlying instant: %v != %v", inst.UTC(), melbourne.UTC())
	}
	if melbourne.Civil().Location().String() != "Australia/Melbourne" {
		t.Errorf("civil zone = %q, want Australia/Melbourne", melbourne.Civil().Location().String())
	}
}

func TestAddAndSub(t *testing.T) {
	a, err := civiltime.ParseInLocation("2006-01-02T15:04:05", "2019-03-18T22:30:15", "UTC")
	if err != nil {
		t.Fatalf("ParseInLocation: %v", err)
	}

	b := a.Add(24 * time.Hour)
	if b.Civil().Day() != 19 {
		t.Errorf("Add(24h) day = %d, want 19", b.Civil().Day())
	}

	if got := b.Sub(a); got != 24*time.Hour {
		t.Errorf("Sub = %v, want 24h", got)
	}
}

func TestNewInstant(t *testing.T) {
	civil := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	inst := civiltime.NewInstant(civil)
	if !inst.Civil().Equal(civil) {
		t.Errorf("Civil() = %v, want %v", inst.Civil(), civil)
	}
	if !inst.UTC().Equal(civil) {
		t.Errorf("UTC() = %v, want %v", inst.UTC(), civil)
	}
}
