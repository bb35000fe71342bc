package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/vmanager/vehicle-manager-server/internal/apierrors"
	"github.com/vmanager/vehicle-manager-server/internal/logger"
	"github.com/vmanager/vehicle-manager-server/internal/model"
)

// Vehicle implements the ownership-gated vehicle operations. Every lookup
// checks existence before ownership, so probing an unknown id yields 404
// rather than 403 regardless of the caller.
type Vehicle struct {
	vehicleStore model.VehicleStore
	logger       *logger.Logger
}

func NewVehicle(vehicleStore model.VehicleStore, logger *logger.Logger) *Vehicle {
	return &Vehicle{
		vehicleStore: vehicleStore,
		logger:       logger,
	}
}

// Create persists a new vehicle owned by the principal.
func (s *Vehicle) Create(ctx context.Context, principal model.User, params model.CreateVehicleParams) (model.Vehicle, error) {
	vehicle := model.Vehicle{
		Make:            params.Make,
		Model:           params.Model,
		Year:            params.Year,
		LicensePlate:    params.LicensePlate,
		OdometerReading: params.OdometerReading,
		VIN:             params.VIN,
		OwnerID:         principal.ID,
	}

	saved, err := s.vehicleStore.Create(ctx, vehicle)
	if err != nil {
		if apiErr := duplicateFieldError(err); apiErr != nil {
			return model.Vehicle{}, apiErr
		}
		s.logger.Error("Vehicle service: failed to create vehicle",
			"owner_id", principal.ID,
			"error", err.Error())
		return model.Vehicle{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.logger.Info("Vehicle service: vehicle created",
		"vehicle_id", saved.ID,
		"owner_id", principal.ID)

	return saved, nil
}

// List returns the principal's vehicles, skip/limit applied after the
// ownership filter.
func (s *Vehicle) List(ctx context.Context, principal model.User, skip, limit int) ([]model.Vehicle, error) {
	vehicles, err := s.vehicleStore.ListByOwner(ctx, principal.ID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles by owner: %w", err)
	}

	return vehicles, nil
}

// Get returns the vehicle if it exists and the principal owns it.
func (s *Vehicle) Get(ctx context.Context, principal model.User, vehicleID int64) (model.Vehicle, error) {
	return s.getOwned(ctx, principal, vehicleID, "access")
}

// Update merges the supplied fields into the vehicle and persists it.
// Unset fields keep their stored values; id and owner are immutable.
func (s *Vehicle) Update(ctx context.Context, principal model.User, vehicleID int64, params model.UpdateVehicleParams) (model.Vehicle, error) {
	vehicle, err := s.getOwned(ctx, principal, vehicleID, "modify")
	if err != nil {
		return model.Vehicle{}, err
	}

	params.ApplyTo(&vehicle)

	saved, err := s.vehicleStore.Update(ctx, vehicle)
	if errors.Is(err, model.ErrNotFound) {
		return model.Vehicle{}, apierrors.NewErrVehicleNotFound()
	}
	if err != nil {
		if apiErr := duplicateFieldError(err); apiErr != nil {
			return model.Vehicle{}, apiErr
		}
		return model.Vehicle{}, fmt.Errorf("failed to update vehicle: %w", err)
	}

	s.logger.Info("Vehicle service: vehicle updated",
		"vehicle_id", saved.ID,
		"owner_id", principal.ID)

	return saved, nil
}

// Delete hard-deletes the vehicle and returns the record as it was
// immediately before deletion.
func (s *Vehicle) Delete(ctx context.Context, principal model.User, vehicleID int64) (model.Vehicle, error) {
	vehicle, err := s.getOwned(ctx, principal, vehicleID, "delete")
	if err != nil {
		return model.Vehicle{}, err
	}

	err = s.vehicleStore.Delete(ctx, vehicleID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Vehicle{}, apierrors.NewErrVehicleNotFound()
	}
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("failed to delete vehicle: %w", err)
	}

	s.logger.Info("Vehicle service: vehicle deleted",
		"vehicle_id", vehicleID,
		"owner_id", principal.ID)

	return vehicle, nil
}

func (s *Vehicle) getOwned(ctx context.Context, principal model.User, vehicleID int64, action string) (model.Vehicle, error) {
	vehicle, err := s.vehicleStore.GetByID(ctx, vehicleID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Vehicle{}, apierrors.NewErrVehicleNotFound()
	}
	if err != nil {
		return model.Vehicle{}, fmt.Errorf("failed to get vehicle by id: %w", err)
	}

	if vehicle.OwnerID != principal.ID {
		return model.Vehicle{}, apierrors.NewErrVehicleForbidden(action)
	}

	return vehicle, nil
}

func duplicateFieldError(err error) *apierrors.APIError {
	switch {
	case errors.Is(err, model.ErrPlateTaken):
		return apierrors.NewErrPlateTaken()
	case errors.Is(err, model.ErrVINTaken):
		return apierrors.NewErrVINTaken()
	default:
		return nil
	}
}
