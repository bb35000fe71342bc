package model

import "errors"

var (
	// ErrNotFound is returned by stores when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrEmailTaken is returned by UserStore.Create on a duplicate email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrPlateTaken is returned by VehicleStore on a duplicate license plate.
	ErrPlateTaken = errors.New("license plate already taken")
	// ErrVINTaken is returned by VehicleStore on a duplicate VIN.
	ErrVINTaken = errors.New("vin already taken")
)
