package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"veeloway/internal/service"
)

// ScooterHandler handles HTTP requests for the fleet.
type ScooterHandler struct {
	scooterService *service.ScooterService
	fleetService   *service.FleetService
}

// NewScooterHandler creates a new ScooterHandler.
func NewScooterHandler(scooterService *service.ScooterService, fleetService *service.FleetService) *ScooterHandler {
	return &ScooterHandler{scooterService: scooterService, fleetService: fleetService}
}

// ScooterRequest is the HTTP request body for creating or updating a scooter.
type ScooterRequest struct {
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	SerialNumber  string  `json:"serial_number"`
	Status        string  `json:"status,omitempty"`
	Battery       int     `json:"battery"`
	Location      string  `json:"location"`
	RatePerMinute float64 `json:"rate_per_minute"`
}

// Register handles POST /v1/scooters
func (h *ScooterHandler) Register(c *gin.Context) {
	var req ScooterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	scooter, err := h.scooterService.Register(c.Request.Context(), service.ScooterInput{
		Brand:         req.Brand,
		Model:         req.Model,
		SerialNumber:  req.SerialNumber,
		Status:        req.Status,
		Battery:       req.Battery,
		Location:      req.Location,
		RatePerMinute: req.RatePerMinute,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, scooter)
}

// Get handles GET /v1/scooters/:id
func (h *ScooterHandler) Get(c *gin.Context) {
	scooter, err := h.scooterService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, scooter)
}

// GetAll handles GET /v1/scooters. Supports ?q= brand/model/serial search,
// ?status= filtering, and ?assignable=true for the rental screen.
func (h *ScooterHandler) GetAll(c *gin.Context) {
	if c.Query("assignable") == "true" {
		scooters, err := h.scooterService.GetAssignable(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, scooters)
		return
	}

	scooters, err := h.scooterService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	q := strings.ToLower(c.Query("q"))
	status := c.Query("status")

	filtered := scooters[:0]
	for _, scooter := range scooters {
		if status != "" && string(scooter.Status) != status {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(scooter.Brand), q) &&
			!strings.Contains(strings.ToLower(scooter.Model), q) &&
			!strings.Contains(strings.ToLower(scooter.SerialNumber), q) {
			continue
		}
		filtered = append(filtered, scooter)
	}

	c.JSON(http.StatusOK, filtered)
}

// Update handles PUT /v1/scooters/:id
func (h *ScooterHandler) Update(c *gin.Context) {
	var req ScooterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	scooter, err := h.scooterService.Update(c.Request.Context(), c.Param("id"), service.ScooterInput{
		Brand:         req.Brand,
		Model:         req.Model,
		SerialNumber:  req.SerialNumber,
		Status:        req.Status,
		Battery:       req.Battery,
		Location:      req.Location,
		RatePerMinute: req.RatePerMinute,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, scooter)
}

// Delete handles DELETE /v1/scooters/:id
func (h *ScooterHandler) Delete(c *gin.Context) {
	if err := h.scooterService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// LocationRequest is the HTTP request body for a position report.
type LocationRequest struct {
	Lat float64 `json:"lat" binding:"required"`
	Lng float64 `json:"lng" binding:"required"`
}

// UpdateLocation handles POST /v1/scooters/:id/location
func (h *ScooterHandler) UpdateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.fleetService.UpdateLocation(c.Request.Context(), c.Param("id"), req.Lat, req.Lng); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "location updated"})
}

// NearbyScooterResponse is one hit of a proximity query.
type NearbyScooterResponse struct {
	ScooterID     string  `json:"scooter_id"`
	Brand         string  `json:"brand"`
	Model         string  `json:"model"`
	Battery       int     `json:"battery"`
	Lat           float64 `json:"lat"`
	Lng           float64 `json:"lng"`
	DistanceKm    float64 `json:"distance_km"`
	RatePerMinute float64 `json:"rate_per_minute"`
}

// Nearby handles GET /v1/scooters/nearby. Requires ?lat= and ?lng=;
// ?radius_km= defaults to 2.
func (h *ScooterHandler) Nearby(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "lat and lng are required"})
		return
	}

	radiusKm := 2.0
	if raw := c.Query("radius_km"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid radius_km"})
			return
		}
		radiusKm = parsed
	}

	nearby, err := h.fleetService.Nearby(c.Request.Context(), lat, lng, radiusKm)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]NearbyScooterResponse, 0, len(nearby))
	for _, n := range nearby {
		resp = append(resp, NearbyScooterResponse{
			ScooterID:     n.Scooter.ID,
			Brand:         n.Scooter.Brand,
			Model:         n.Scooter.Model,
			Battery:       n.Scooter.Battery,
			Lat:           n.Lat,
			Lng:           n.Lng,
			DistanceKm:    n.DistanceKm,
			RatePerMinute: n.Scooter.RatePerMinute,
		})
	}

	c.JSON(http.StatusOK, resp)
}
