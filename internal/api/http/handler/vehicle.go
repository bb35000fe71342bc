package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vmanager/vehicle-manager-server/internal/apierrors"
	"github.com/vmanager/vehicle-manager-server/internal/logger"
	"github.com/vmanager/vehicle-manager-server/internal/model"
)

const (
	defaultListLimit = 100
)

// VehicleService defines the ownership-gated vehicle operations.
type VehicleService interface {
	Create(ctx context.Context, principal model.User, params model.CreateVehicleParams) (model.Vehicle, error)
	List(ctx context.Context, principal model.User, skip, limit int) ([]model.Vehicle, error)
	Get(ctx context.Context, principal model.User, vehicleID int64) (model.Vehicle, error)
	Update(ctx context.Context, principal model.User, vehicleID int64, params model.UpdateVehicleParams) (model.Vehicle, error)
	Delete(ctx context.Context, principal model.User, vehicleID int64) (model.Vehicle, error)
}

// Vehicle handles HTTP endpoints for vehicle management.
type Vehicle struct {
	vehicleService VehicleService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewVehicle creates a new Vehicle handler.
func NewVehicle(vehicleService VehicleService, contextManager model.ContextManager, logger *logger.Logger) *Vehicle {
	return &Vehicle{
		vehicleService: vehicleService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// CreateVehicleRequest is the vehicle creation payload.
type CreateVehicleRequest struct {
	Make            string  `json:"make" binding:"required"`
	Model           string  `json:"model" binding:"required"`
	Year            int     `json:"year" binding:"required"`
	LicensePlate    string  `json:"license_plate" binding:"required"`
	OdometerReading *int    `json:"odometer_reading" binding:"required"`
	VIN             *string `json:"vin"`
}

// UpdateVehicleRequest is the partial update payload; absent fields leave
// the stored values untouched.
type UpdateVehicleRequest struct {
	Make            *string `json:"make"`
	Model           *string `json:"model"`
	Year            *int    `json:"year"`
	LicensePlate    *string `json:"license_plate"`
	OdometerReading *int    `json:"odometer_reading"`
	VIN             *string `json:"vin"`
}

// VehicleResponse is the wire shape of a vehicle.
type VehicleResponse struct {
	ID              int64   `json:"id"`
	Make            string  `json:"make"`
	Model           string  `json:"model"`
	Year            int     `json:"year"`
	LicensePlate    string  `json:"license_plate"`
	OdometerReading int     `json:"odometer_reading"`
	VIN             *string `json:"vin"`
	OwnerID         int64   `json:"owner_id"`
}

func newVehicleResponse(vehicle model.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:              vehicle.ID,
		Make:            vehicle.Make,
		Model:           vehicle.Model,
		Year:            vehicle.Year,
		LicensePlate:    vehicle.LicensePlate,
		OdometerReading: vehicle.OdometerReading,
		VIN:             vehicle.VIN,
		OwnerID:         vehicle.OwnerID,
	}
}

// Create persists a new vehicle owned by the caller.
func (h *Vehicle) Create(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), principal, model.CreateVehicleParams{
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		LicensePlate:    req.LicensePlate,
		OdometerReading: *req.OdometerReading,
		VIN:             req.VIN,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newVehicleResponse(vehicle))
}

// List returns the caller's vehicles with skip/limit pagination.
func (h *Vehicle) List(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	skip, err := queryInt(c, "skip", 0)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid skip parameter"})
		return
	}
	limit, err := queryInt(c, "limit", defaultListLimit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid limit parameter"})
		return
	}

	vehicles, err := h.vehicleService.List(c.Request.Context(), principal, skip, limit)
	if err != nil {
		writeError(c, err)
		return
	}

	response := make([]VehicleResponse, 0, len(vehicles))
	for _, vehicle := range vehicles {
		response = append(response, newVehicleResponse(vehicle))
	}

	c.JSON(http.StatusOK, response)
}

// Get returns a single vehicle owned by the caller.
func (h *Vehicle) Get(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	vehicleID, ok := h.vehicleID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.Get(c.Request.Context(), principal, vehicleID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newVehicleResponse(vehicle))
}

// Update applies a partial update to a vehicle owned by the caller.
func (h *Vehicle) Update(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	vehicleID, ok := h.vehicleID(c)
	if !ok {
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), principal, vehicleID, model.UpdateVehicleParams{
		Make:            req.Make,
		Model:           req.Model,
		Year:            req.Year,
		LicensePlate:    req.LicensePlate,
		OdometerReading: req.OdometerReading,
		VIN:             req.VIN,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newVehicleResponse(vehicle))
}

// Delete removes a vehicle owned by the caller and returns it as deleted.
func (h *Vehicle) Delete(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	vehicleID, ok := h.vehicleID(c)
	if !ok {
		return
	}

	vehicle, err := h.vehicleService.Delete(c.Request.Context(), principal, vehicleID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, newVehicleResponse(vehicle))
}

func (h *Vehicle) principal(c *gin.Context) (model.User, bool) {
	user, ok := h.contextManager.GetUserFromContext(c.Request.Context())
	if !ok {
		writeError(c, apierrors.NewErrNotAuthenticated())
		return model.User{}, false
	}
	return user, true
}

func (h *Vehicle) vehicleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid vehicle id"})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, strconv.ErrSyntax
	}
	return value, nil
}
