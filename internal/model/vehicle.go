package model

import (
	"context"
)

// VehicleStore defines persistence operations for vehicles.
type VehicleStore interface {
	Create(ctx context.Context, vehicle Vehicle) (Vehicle, error)
	GetByID(ctx context.Context, id int64) (Vehicle, error)
	ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]Vehicle, error)
	Update(ctx context.Context, vehicle Vehicle) (Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

// Vehicle represents a stored vehicle entity. Every vehicle is owned by
// exactly one user for its entire lifetime.
type Vehicle struct {
	ID              int64
	Make            string
	Model           string
	Year            int
	LicensePlate    string
	OdometerReading int
	VIN             *string
	OwnerID         int64
}

// CreateVehicleParams contains parameters to create a vehicle.
type CreateVehicleParams struct {
	Make            string
	Model           string
	Year            int
	LicensePlate    string
	OdometerReading int
	VIN             *string
}

// UpdateVehicleParams describes a partial vehicle update. Only non-nil
// fields overwrite the stored entity; id and owner are never touched.
type UpdateVehicleParams struct {
	Make            *string
	Model           *string
	Year            *int
	LicensePlate    *string
	OdometerReading *int
	VIN             *string
}

// ApplyTo merges the set fields of the update into the vehicle.
func (p UpdateVehicleParams) ApplyTo(v *Vehicle) {
	if p.Make != nil {
		v.Make = *p.Make
	}
	if p.Model != nil {
		v.Model = *p.Model
	}
	if p.Year != nil {
		v.Year = *p.Year
	}
	if p.LicensePlate != nil {
		v.LicensePlate = *p.LicensePlate
	}
	if p.OdometerReading != nil {
		v.OdometerReading = *p.OdometerReading
	}
	if p.VIN != nil {
		v.VIN = p.VIN
	}
}
