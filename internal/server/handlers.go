package server

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hupe1980/neodb"
	"github.com/hupe1980/neodb/filter"
	"github.com/hupe1980/neodb/model"
	"github.com/hupe1980/neodb/writer"
)

// NEOResponse is the JSON form of a NEO and its approaches.
type NEOResponse struct {
	Designation          string             `json:"designation"`
	Name                 string             `json:"name"`
	DiameterKM           *float64           `json:"diameter_km"`
	PotentiallyHazardous bool               `json:"potentially_hazardous"`
	Approaches           []ApproachResponse `json:"approaches"`
}

// ApproachResponse is the JSON form of an approach without its NEO.
type ApproachResponse struct {
	DatetimeUTC string  `json:"datetime_utc"`
	DistanceAU  float64 `json:"distance_au"`
	VelocityKMS float64 `json:"velocity_km_s"`
}

func newNEOResponse(neo *model.NearEarthObject) NEOResponse {
	resp := NEOResponse{
		Designation:          neo.Designation,
		Name:                 neo.Name,
		PotentiallyHazardous: neo.Hazardous,
		Approaches:           make([]ApproachResponse, 0, len(neo.Approaches)),
	}
	if neo.HasDiameter() {
		d := neo.Diameter
		resp.DiameterKM = &d
	}
	for _, ca := range neo.Approaches {
		resp.Approaches = append(resp.Approaches, ApproachResponse{
			DatetimeUTC: ca.TimeString(),
			DistanceAU:  ca.Distance,
			VelocityKMS: ca.Velocity,
		})
	}
	return resp
}

func errorJSON(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.db.Stats())
}

func (s *Server) neoByDesignation(c *gin.Context) {
	designation := c.Param("designation")
	neo, ok := s.db.NEOByDesignation(designation)
	if !ok {
		errorJSON(c, http.StatusNotFound, fmt.Errorf("%w: designation %q", neodb.ErrNotFound, designation))
		return
	}
	c.JSON(http.StatusOK, newNEOResponse(neo))
}

func (s *Server) neoByName(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok || name == "" {
		errorJSON(c, http.StatusBadRequest, fmt.Errorf("query parameter name is required"))
		return
	}
	neo, ok := s.db.NEOByName(name)
	if !ok {
		errorJSON(c, http.StatusNotFound, fmt.Errorf("%w: name %q", neodb.ErrNotFound, name))
		return
	}
	c.JSON(http.StatusOK, newNEOResponse(neo))
}

// CacheHeader reports whether a response was served from the cache.
const CacheHeader = "X-Cache"

var contentTypes = map[writer.Format]string{
	writer.FormatCSV:  "text/csv; charset=utf-8",
	writer.FormatJSON: "application/json; charset=utf-8",
	writer.FormatYAML: "application/yaml; charset=utf-8",
	writer.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

func (s *Server) approaches(c *gin.Context) {
	criteria, err := filter.Parse(c.GetQuery)
	if err != nil {
		errorJSON(c, http.StatusBadRequest, err)
		return
	}

	limit := neodb.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			errorJSON(c, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
	}

	format := writer.FormatJSON
	if raw := c.Query("format"); raw != "" {
		format, err = writer.ParseFormat(raw)
		if err != nil {
			errorJSON(c, http.StatusBadRequest, err)
			return
		}
	}

	key := string(format) + "?" + c.Request.URL.Query().Encode()
	if s.cache != nil {
		if body, ok := s.cache.Get(key); ok {
			c.Header(CacheHeader, "HIT")
			c.Data(http.StatusOK, contentTypes[format], body)
			return
		}
	}

	var buf bytes.Buffer
	results := neodb.Limit(s.db.Query(criteria), limit)
	if err := writer.Write(format, &buf, results, writer.WithCodec(s.codec)); err != nil {
		s.logger.WarnContext(c.Request.Context(), "render response failed", "error", err)
		errorJSON(c, http.StatusInternalServerError, err)
		return
	}

	body := buf.Bytes()
	if s.cache != nil {
		s.cache.Set(key, body)
		c.Header(CacheHeader, "MISS")
	}
	c.Data(http.StatusOK, contentTypes[format], body)
}
