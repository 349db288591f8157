// Package service implements the ChartService façade (C7): the single
// entry point every external caller (the CLI, the API dispatcher) goes
// through. It is constructed once per process, holding no state beyond
// what its methods need at call time — the underlying ephemeris handle is
// itself a process-wide singleton (internal/ephemeris), so ChartService
// need not be one either: New returns a fresh value on each call, and the
// process entrypoint constructs one and shares it with the dispatcher.
package service

import (
	"fmt"
	"time"

	"github.com/dcccxiii/siderealcore/internal/chart"
	"github.com/dcccxiii/siderealcore/internal/civiltime"
	"github.com/dcccxiii/siderealcore/internal/config"
	"github.com/dcccxiii/siderealcore/internal/ephemeris"
	"github.com/dcccxiii/siderealcore/internal/harmonic"
)

// ChartService is the façade described by C7: create_chart,
// generate_return_pairs, transit_sensitive_bundle, progressions.
type ChartService struct{}

// New constructs a ChartService. There is no per-instance state to
// initialize; the ephemeris handle underneath is opened once by the
// process entrypoint.
func New() *ChartService { return &ChartService{} }

// CreateChart delegates directly to the chart assembler (C4).
func (s *ChartService) CreateChart(local civiltime.Instant, lon, lat float64, placeName string) (chart.Chart, error) {
	return chart.Assemble(local, lon, lat, placeName)
}

// ReturnPair bundles a return-moment chart with the radix re-projected
// (precessed) into that return's framework — the shape every return-chart
// consumer downstream actually wants, since aspects and angularity between
// the two only make sense once both share the same sky.
type ReturnPair struct {
	Radix  chart.Chart
	Return chart.Chart
}

// GenerateReturnPairs relocates the radix to the return location/timezone,
// finds qty harmonic-return instants of body/harmonic n nearest (and
// following) the anchor, builds a chart at each instant, and pairs each
// with a deep copy of the radix precessed into that return's sky.
func (s *ChartService) GenerateReturnPairs(
	radix chart.Chart,
	lon, lat float64,
	anchor civiltime.Instant,
	anchorTZ string,
	body ephemeris.BodyId,
	harmonicN int,
	qty int,
) ([]ReturnPair, error) {
	relocatedRadix, err := chart.Relocate(radix, lon, lat, anchorTZ)
	if err != nil {
		return nil, fmt.Errorf("relocating radix: %w", err)
	}

	natalLon := relocatedRadix.Ecliptic[body].Longitude

	hits, err := harmonic.GenerateSequence(body, natalLon, harmonicN, anchor.UTC(), qty)
	if err != nil {
		return nil, fmt.Errorf("generating %s harmonic-%d returns: %w", body, harmonicN, err)
	}

	pairs := make([]ReturnPair, 0, len(hits))
	for _, hit := range hits {
		loc := anchor.Civil().Location()
		returnInstant := civiltime.NewInstant(hit.In(loc))

		returnChart, err := chart.Assemble(returnInstant, lon, lat, relocatedRadix.PlaceName)
		if err != nil {
			return nil, fmt.Errorf("assembling return chart: %w", err)
		}

		precessedRadix := chart.Precess(relocatedRadix.Clone(), returnChart)
		pairs = append(pairs, ReturnPair{Radix: precessedRadix, Return: returnChart})
	}

	return pairs, nil
}

// Progressions computes a secondary-progressed chart: the Q2-scaled
// interval between radix and the target civil moment determines how far
// past the radix instant to project (the progressed day), and the chart is
// assembled at that progressed instant for the given location. Its
// LocalDatetime and UTCDatetime are then overwritten with the real target
// moment. JulianDay, Framework, Mundane, RightAscension, Cusps and Angles
// stay as computed for the progressed instant; mundane/RA are not
// re-projected against the target moment.
func (s *ChartService) Progressions(radix chart.Chart, target civiltime.Instant, lon, lat float64) (chart.Chart, error) {
	progressedMinutes := target.UTC().Sub(radix.UTCDatetime).Minutes() * config.Q2
	progressedInstant := civiltime.NewInstant(radix.UTCDatetime.Add(time.Duration(progressedMinutes) * time.Minute))

	progressed, err := chart.Assemble(progressedInstant, lon, lat, radix.PlaceName)
	if err != nil {
		return chart.Chart{}, fmt.Errorf("assembling progressed chart: %w", err)
	}

	progressed.LocalDatetime = target.Civil()
	progressed.UTCDatetime = target.UTC()

	return progressed, nil
}

// TransitBundle is the shape transit_sensitive_bundle assembles: a radix,
// the radix relocated to the querying location ("local"), the
// secondary-progressed radix, the active solar return, the
// secondary-progressed solar return, and the transiting chart for the
// moment itself.
type TransitBundle struct {
	Radix      chart.Chart
	LocalNatal chart.Chart
	SPRadix    chart.Chart
	SSR        chart.Chart
	SPSSR      chart.Chart
	Transits   chart.Chart
}

// TransitSensitiveBundle assembles every chart a transit-sensitive report
// needs in one call: the radix, its relocation to the querying location,
// its secondary progression, the active solar return (re-sought one solar
// cycle earlier if the naively nearest return actually lies in the
// future), the progressed solar return, and the transiting chart for the
// target moment.
func (s *ChartService) TransitSensitiveBundle(radix chart.Chart, target civiltime.Instant, lon, lat float64) (TransitBundle, error) {
	tz := target.Civil().Location().String()

	localNatal, err := chart.Relocate(radix, lon, lat, tz)
	if err != nil {
		return TransitBundle{}, fmt.Errorf("relocating radix to local: %w", err)
	}

	spRadix, err := s.Progressions(radix, target, lon, lat)
	if err != nil {
		return TransitBundle{}, err
	}

	ssr, err := s.activeSolarReturn(localNatal, target, lon, lat)
	if err != nil {
		return TransitBundle{}, err
	}

	spSSR, err := s.Progressions(ssr, target, lon, lat)
	if err != nil {
		return TransitBundle{}, err
	}

	transits, err := chart.Assemble(target, lon, lat, "")
	if err != nil {
		return TransitBundle{}, fmt.Errorf("assembling transit chart: %w", err)
	}

	return TransitBundle{
		Radix:      radix,
		LocalNatal: localNatal,
		SPRadix:    spRadix,
		SSR:        ssr,
		SPSSR:      spSSR,
		Transits:   transits,
	}, nil
}

// activeSolarReturn finds the qty=1, n=1, body=Sun return nearest the
// target moment. If that return lies in the future relative to target, it
// is not yet "active" — the search is re-run one solar cycle earlier so
// the bundle reports the most recent return that has actually occurred.
func (s *ChartService) activeSolarReturn(radix chart.Chart, target civiltime.Instant, lon, lat float64) (chart.Chart, error) {
	hit, err := harmonic.NearestReturn(ephemeris.Sun, radix.Ecliptic[ephemeris.Sun].Longitude, 1, target.UTC())
	if err != nil {
		return chart.Chart{}, fmt.Errorf("finding solar return: %w", err)
	}

	if hit.After(target.UTC()) {
		yearEarlier := target.UTC().AddDate(-1, 0, 0)
		hit, err = harmonic.NearestReturn(ephemeris.Sun, radix.Ecliptic[ephemeris.Sun].Longitude, 1, yearEarlier)
		if err != nil {
			return chart.Chart{}, fmt.Errorf("finding prior solar return: %w", err)
		}
	}

	loc := target.Civil().Location()
	return chart.Assemble(civiltime.NewInstant(hit.In(loc)), lon, lat, radix.PlaceName)
}
