package chart

import (
	"math"
	"sort"

	"github.com/dcccxiii/siderealcore/internal/projector"
)

// AngularityEntry reports how close a body sits to a chart angle, measured
// in prime-vertical longitude (for the four primary angles and the
// background cusps) or ecliptic longitude (for the six secondary angles).
type AngularityEntry struct {
	Body  string
	Angle string
	Orb   float64 // degrees from exact
}

// primaryHouses maps each primary angle to the pair of houses a body must
// sit in the tail or head of to be considered angular to it, following the
// legacy angularity spreadsheet: houses (12,1) flank the Ascendant,
// (9,10) flank the MC, (6,7) the Descendant, (3,4) the IC.
var primaryHouses = map[string][2]int{
	projector.AngleAsc: {12, 1},
	projector.AngleMC:  {9, 10},
	projector.AngleDsc: {6, 7},
	projector.AngleIC:  {3, 4},
}

var backgroundHouses = [][2]int{{2, 3}, {5, 6}, {8, 9}, {11, 12}}

var secondaryAngles = []string{
	projector.AngleEqAsc, projector.AngleEqDsc, projector.AngleEP,
	projector.AngleZen, projector.AngleWP, projector.AngleNdr,
}

// Foreground returns the bodies angular to a primary chart angle or to a
// secondary angle, sorted with the tightest orb first.
func (c *Chart) Foreground() []AngularityEntry {
	var out []AngularityEntry

	for angle, houses := range primaryHouses {
		for i := range c.Mundane {
			out = appendIfAngular(out, bodyOrder[i].String(), angle, c.Mundane[i], houses)
		}
	}

	for _, angle := range secondaryAngles {
		point, ok := c.Angles[angle]
		if !ok {
			continue
		}
		if point >= 355 {
			point -= 360
		}
		for i := range c.Ecliptic {
			lon := c.Ecliptic[i].Longitude
			if lon >= 355 {
				lon -= 360
			}
			if lon >= point-3 && lon <= point+3 {
				out = append(out, AngularityEntry{
					Body:  bodyOrder[i].String(),
					Angle: angle,
					Orb:   math.Abs(lon - point),
				})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Orb < out[j].Orb })
	return out
}

// Background returns the bodies sitting near the non-angular house cusps,
// sorted with the tightest orb first.
func (c *Chart) Background() []AngularityEntry {
	var out []AngularityEntry
	for _, houses := range backgroundHouses {
		for i := range c.Mundane {
			out = appendIfAngular(out, bodyOrder[i].String(), "background", c.Mundane[i], houses)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Orb < out[j].Orb })
	return out
}

func appendIfAngular(out []AngularityEntry, body, angle string, m projector.Mundane, houses [2]int) []AngularityEntry {
	within := m.PVL - float64((m.House-1)*30)
	switch {
	case m.House == houses[0] && within >= 20:
		return append(out, AngularityEntry{Body: body, Angle: angle, Orb: math.Abs(within - 30)})
	case m.House == houses[1] && within <= 10:
		return append(out, AngularityEntry{Body: body, Angle: angle, Orb: within})
	default:
		return out
	}
}

