package chart

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dcccxiii/siderealcore/internal/projector"
	"github.com/dcccxiii/siderealcore/internal/sidereal"
)

// wireTimeLayout is the local_datetime/utc_datetime wire layout: RFC3339
// with seconds precision.
const wireTimeLayout = "2006-01-02T15:04:05Z07:00"

// SignPosition is a longitude re-expressed as a zodiac sign and the degree
// within that sign, via ZodiacSign.
type SignPosition struct {
	Sign    string  `json:"sign"`
	Degrees float64 `json:"degrees"`
}

// wireChart mirrors the Chart JSON schema of §6.3 exactly; field names are
// the compatibility contract with the API dispatcher's callers.
type wireChart struct {
	Ecliptical     map[string]float64 `json:"ecliptical"`
	Mundane        map[string]float64 `json:"mundane"`
	RightAscension map[string]float64 `json:"right_ascension"`
	Angles         map[string]float64 `json:"angles"`
	Cusps          map[string]float64 `json:"cusps"`

	// Signs presents every ecliptic body longitude, angle, and cusp as a
	// zodiac sign name plus degree within that sign, rather than a bare
	// longitude. Bodies and angles are keyed by the same names as in their
	// own maps above; cusp n is keyed "n-cusp" (e.g. "1-cusp").
	Signs map[string]SignPosition `json:"signs"`

	LocalDatetime string  `json:"local_datetime"`
	UTCDatetime   string  `json:"utc_datetime"`
	TZ            string  `json:"tz"`
	JulianDay     float64 `json:"julian_day"`
	LST           float64 `json:"lst"`
	RAMC          float64 `json:"ramc"`
	Obliquity     float64 `json:"obliquity"`
	SVP           float64 `json:"svp"`
	Longitude     float64 `json:"longitude"`
	Latitude      float64 `json:"latitude"`
	PlaceName     *string `json:"place_name"`
}

// MarshalJSON renders the Chart JSON schema of §6.3.
func (c Chart) MarshalJSON() ([]byte, error) {
	w := wireChart{
		Ecliptical:     map[string]float64{},
		Mundane:        map[string]float64{},
		RightAscension: map[string]float64{},
		Angles:         map[string]float64{},
		Cusps:          map[string]float64{},
		Signs:          map[string]SignPosition{},
		LocalDatetime:  c.LocalDatetime.Format(wireTimeLayout),
		UTCDatetime:    c.UTCDatetime.Format(wireTimeLayout),
		TZ:             c.LocalDatetime.Location().String(),
		JulianDay:      c.JulianDay,
		LST:            c.Framework.LST,
		RAMC:           c.Framework.RAMC,
		Obliquity:      c.Framework.Obliquity,
		SVP:            c.Framework.SVP,
		Longitude:      c.Framework.GeoLongitude,
		Latitude:       c.Framework.GeoLatitude,
	}

	for i, b := range bodyOrder {
		name := b.String()
		w.Ecliptical[name] = c.Ecliptic[i].Longitude
		w.Mundane[name] = c.Mundane[i].PVL
		w.RightAscension[name] = c.RightAscension[i]

		sign, deg := ZodiacSign(c.Ecliptic[i].Longitude)
		w.Signs[name] = SignPosition{Sign: sign, Degrees: deg}
	}
	for k, v := range c.Angles {
		w.Angles[k] = v

		sign, deg := ZodiacSign(v)
		w.Signs[k] = SignPosition{Sign: sign, Degrees: deg}
	}
	for i := 1; i <= 12; i++ {
		w.Cusps[strconv.Itoa(i)] = c.Cusps[i]

		sign, deg := ZodiacSign(c.Cusps[i])
		w.Signs[strconv.Itoa(i)+"-cusp"] = SignPosition{Sign: sign, Degrees: deg}
	}
	if c.PlaceName != "" {
		name := c.PlaceName
		w.PlaceName = &name
	}

	return json.Marshal(w)
}

// UnmarshalJSON reconstructs a Chart from the §6.3 wire schema, the inverse
// of MarshalJSON. It is what lets the API dispatcher accept a previously
// rendered radix (or return_chart) back as a request field, e.g. in the
// Relocate request.
func (c *Chart) UnmarshalJSON(data []byte) error {
	var w wireChart
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	loc, err := time.LoadLocation(w.TZ)
	if err != nil {
		loc = time.UTC
	}

	local, err := time.ParseInLocation(wireTimeLayout, w.LocalDatetime, loc)
	if err != nil {
		return fmt.Errorf("parsing local_datetime: %w", err)
	}
	utc, err := time.Parse(wireTimeLayout, w.UTCDatetime)
	if err != nil {
		return fmt.Errorf("parsing utc_datetime: %w", err)
	}

	c.LocalDatetime = local
	c.UTCDatetime = utc.UTC()
	c.JulianDay = w.JulianDay
	c.Framework = sidereal.Framework{
		GeoLongitude: w.Longitude,
		GeoLatitude:  w.Latitude,
		LST:          w.LST,
		RAMC:         w.RAMC,
		SVP:          w.SVP,
		Obliquity:    w.Obliquity,
	}

	for i, b := range bodyOrder {
		name := b.String()
		c.Ecliptic[i].Longitude = w.Ecliptical[name]
		pvl := w.Mundane[name]
		c.Mundane[i] = projector.Mundane{House: int(math.Floor(pvl/30)) + 1, PVL: pvl}
		c.RightAscension[i] = w.RightAscension[name]
	}

	c.Angles = make(projector.Angles, len(w.Angles))
	for k, v := range w.Angles {
		c.Angles[k] = v
	}

	for k, v := range w.Cusps {
		idx, err := strconv.Atoi(k)
		if err != nil || idx < 1 || idx > 12 {
			continue
		}
		c.Cusps[idx] = v
	}

	if w.PlaceName != nil {
		c.PlaceName = *w.PlaceName
	}

	return nil
}
