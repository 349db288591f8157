// Package api is the thin request dispatcher described as an external
// collaborator in §6.2: it decodes requests, calls into the ChartService
// façade (C7), and encodes responses. It contains no chart math of its
// own.
package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dcccxiii/siderealcore/internal/chart"
	"github.com/dcccxiii/siderealcore/internal/civiltime"
	"github.com/dcccxiii/siderealcore/internal/ephemeris"
	"github.com/dcccxiii/siderealcore/internal/harmonic"
	"github.com/dcccxiii/siderealcore/internal/logging"
	"github.com/dcccxiii/siderealcore/internal/service"
)

// civilLayout is the datetime layout request bodies use for local_datetime
// and return_start_date fields: a bare ISO-8601 stamp without zone, since
// the zone is carried separately in the tz field.
const civilLayout = "2006-01-02T15:04:05"

// Server wires the ChartService façade to a gin router.
type Server struct {
	svc *service.ChartService
}

// NewServer constructs a dispatcher around the given ChartService.
func NewServer(svc *service.ChartService) *Server {
	return &Server{svc: svc}
}

// Router builds the gin engine with all three request types (§6.2) wired.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.POST("/radix", s.handleRadix)
	r.POST("/returns", s.handleReturns)
	r.POST("/relocate", s.handleRelocate)
	return r
}

// radixRequest is the Radix request of §6.2.
type radixRequest struct {
	LocalDatetime string  `json:"local_datetime" binding:"required"`
	Longitude     float64 `json:"longitude"`
	Latitude      float64 `json:"latitude"`
	TZ            string  `json:"tz" binding:"required"`
}

func (s *Server) handleRadix(c *gin.Context) {
	var req radixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, err)
		return
	}

	instant, err := civiltime.ParseInLocation(civilLayout, req.LocalDatetime, req.TZ)
	if err != nil {
		respondErr(c, err)
		return
	}

	ch, err := s.svc.CreateChart(instant, req.Longitude, req.Latitude, "")
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, ch)
}

// returnParams mirrors the return_params object of §6.2.
type returnParams struct {
	ReturnPlanet    string  `json:"return_planet" binding:"required"`
	ReturnHarmonic  int     `json:"return_harmonic" binding:"required"`
	ReturnLongitude float64 `json:"return_longitude"`
	ReturnLatitude  float64 `json:"return_latitude"`
	ReturnStartDate string  `json:"return_start_date" binding:"required"`
	TZ              string  `json:"tz" binding:"required"`
	ReturnQuantity  int     `json:"return_quantity" binding:"required"`
}

// returnsRequest is the Returns request of §6.2.
type returnsRequest struct {
	Radix        radixRequest `json:"radix" binding:"required"`
	ReturnParams returnParams `json:"return_params" binding:"required"`
}

// returnPairWire is one element of the Returns response list.
type returnPairWire struct {
	Radix  chart.Chart `json:"radix"`
	Return chart.Chart `json:"return_chart"`
}

func (s *Server) handleReturns(c *gin.Context) {
	var req returnsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, err)
		return
	}

	radixInstant, err := civiltime.ParseInLocation(civilLayout, req.Radix.LocalDatetime, req.Radix.TZ)
	if err != nil {
		respondErr(c, err)
		return
	}
	radix, err := s.svc.CreateChart(radixInstant, req.Radix.Longitude, req.Radix.Latitude, "")
	if err != nil {
		respondErr(c, err)
		return
	}

	body, err := bodyFromName(req.ReturnParams.ReturnPlanet)
	if err != nil {
		respondErr(c, err)
		return
	}

	anchor, err := civiltime.ParseInLocation(civilLayout, req.ReturnParams.ReturnStartDate, req.ReturnParams.TZ)
	if err != nil {
		respondErr(c, err)
		return
	}

	pairs, err := s.svc.GenerateReturnPairs(
		radix,
		req.ReturnParams.ReturnLongitude, req.ReturnParams.ReturnLatitude,
		anchor, req.ReturnParams.TZ,
		body, req.ReturnParams.ReturnHarmonic, req.ReturnParams.ReturnQuantity,
	)
	if err != nil {
		respondErr(c, err)
		return
	}

	out := make([]returnPairWire, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, returnPairWire{Radix: p.Radix, Return: p.Return})
	}
	c.JSON(http.StatusOK, out)
}

// relocateRequest is the Relocate request of §6.2.
type relocateRequest struct {
	Longitude   float64      `json:"longitude"`
	Latitude    float64      `json:"latitude"`
	TZ          string       `json:"tz" binding:"required"`
	Radix       chart.Chart  `json:"radix" binding:"required"`
	ReturnChart *chart.Chart `json:"return_chart,omitempty"`
}

func (s *Server) handleRelocate(c *gin.Context) {
	var req relocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErr(c, err)
		return
	}

	relocated, err := chart.Relocate(req.Radix, req.Longitude, req.Latitude, req.TZ)
	if err != nil {
		respondErr(c, err)
		return
	}

	resp := gin.H{"radix": relocated}
	if req.ReturnChart != nil {
		precessed := chart.Precess(relocated, *req.ReturnChart)
		resp["return_chart"] = precessed
	}
	c.JSON(http.StatusOK, resp)
}

func bodyFromName(name string) (ephemeris.BodyId, error) {
	switch name {
	case "Sun":
		return ephemeris.Sun, nil
	case "Moon":
		return ephemeris.Moon, nil
	default:
		return 0, errors.New("return_planet must be Sun or Moon")
	}
}

// respondErr renders a validation or computation error as
// {"err": "<message>"}, per §6.2. Argument errors, ephemeris errors, and
// search failures are all surfaced the same way at this boundary — only
// their log-time treatment differs (logged warn vs. unlogged fatal).
func respondErr(c *gin.Context, err error) {
	var argErr *harmonic.ArgumentError
	if errors.As(err, &argErr) {
		logging.L().Warn().Err(err).Msg("argument error")
	}
	c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
}
