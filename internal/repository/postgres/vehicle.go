package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vmanager/vehicle-manager-server/internal/model"
)

var _ model.VehicleStore = (*VehicleRepository)(nil)

type VehicleRepository struct {
	db *Connection
}

func NewVehicleRepository(db *Connection) *VehicleRepository {
	return &VehicleRepository{
		db: db,
	}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle model.Vehicle) (model.Vehicle, error) {
	query := `INSERT INTO vehicles (make, model, year, license_plate, odometer_reading, vin, owner_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id, make, model, year, license_plate, odometer_reading, vin, owner_id`

	var saved model.Vehicle
	err := r.db.QueryRow(ctx, query,
		vehicle.Make, vehicle.Model, vehicle.Year, vehicle.LicensePlate,
		vehicle.OdometerReading, vehicle.VIN, vehicle.OwnerID,
	).Scan(
		&saved.ID, &saved.Make, &saved.Model, &saved.Year, &saved.LicensePlate,
		&saved.OdometerReading, &saved.VIN, &saved.OwnerID,
	)
	if err != nil {
		if sentinel := uniqueViolation(err); sentinel != nil {
			return model.Vehicle{}, sentinel
		}
		return model.Vehicle{}, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return saved, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (model.Vehicle, error) {
	query := `SELECT id, make, model, year, license_plate, odometer_reading, vin, owner_id
			  FROM vehicles WHERE id = $1`

	var vehicle model.Vehicle
	err := r.db.QueryRow(ctx, query, id).Scan(
		&vehicle.ID, &vehicle.Make, &vehicle.Model, &vehicle.Year, &vehicle.LicensePlate,
		&vehicle.OdometerReading, &vehicle.VIN, &vehicle.OwnerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Vehicle{}, model.ErrNotFound
		}
		return model.Vehicle{}, fmt.Errorf("failed to get vehicle by id: %w", err)
	}

	return vehicle, nil
}

func (r *VehicleRepository) ListByOwner(ctx context.Context, ownerID int64, skip, limit int) ([]model.Vehicle, error) {
	query := `SELECT id, make, model, year, license_plate, odometer_reading, vin, owner_id
			  FROM vehicles
			  WHERE owner_id = $1
			  ORDER BY id
			  OFFSET $2 LIMIT $3`

	rows, err := r.db.Query(ctx, query, ownerID, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles by owner: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var vehicle model.Vehicle
		err := rows.Scan(
			&vehicle.ID, &vehicle.Make, &vehicle.Model, &vehicle.Year, &vehicle.LicensePlate,
			&vehicle.OdometerReading, &vehicle.VIN, &vehicle.OwnerID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vehicle rows: %w", err)
	}

	return vehicles, nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle model.Vehicle) (model.Vehicle, error) {
	query := `UPDATE vehicles
			  SET make = $2, model = $3, year = $4, license_plate = $5, odometer_reading = $6, vin = $7
			  WHERE id = $1
			  RETURNING id, make, model, year, license_plate, odometer_reading, vin, owner_id`

	var saved model.Vehicle
	err := r.db.QueryRow(ctx, query,
		vehicle.ID, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.LicensePlate, vehicle.OdometerReading, vehicle.VIN,
	).Scan(
		&saved.ID, &saved.Make, &saved.Model, &saved.Year, &saved.LicensePlate,
		&saved.OdometerReading, &saved.VIN, &saved.OwnerID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Vehicle{}, model.ErrNotFound
		}
		if sentinel := uniqueViolation(err); sentinel != nil {
			return model.Vehicle{}, sentinel
		}
		return model.Vehicle{}, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return saved, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM vehicles WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

// uniqueViolation translates a Postgres unique-constraint violation into
// the matching sentinel by constraint name, or returns nil.
func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
		return nil
	}

	switch pgErr.ConstraintName {
	case "users_email_key":
		return model.ErrEmailTaken
	case "vehicles_license_plate_key":
		return model.ErrPlateTaken
	case "vehicles_vin_key":
		return model.ErrVINTaken
	default:
		return nil
	}
}
