package services

import (
	"context"
	"fmt"

	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/models"
	"github.com/EfstathiosChatzikyriakidis/parking-manager/internal/repo"
)

type vehicleStore interface {
	Get(ctx context.Context, id int64) (*models.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type parkedChecker interface {
	ExistsForVehicle(ctx context.Context, vehicleID int64) (bool, error)
}

// VehicleService guards vehicle removal: a parked vehicle cannot be
// deleted while its transaction is active.
type VehicleService struct {
	Vehicles     vehicleStore
	Transactions parkedChecker
}

func NewVehicleService(vehicles vehicleStore, transactions parkedChecker) *VehicleService {
	return &VehicleService{Vehicles: vehicles, Transactions: transactions}
}

func (s *VehicleService) Delete(ctx context.Context, vehicleID int64) error {
	veh, err := s.Vehicles.Get(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("get vehicle: %w", err)
	}
	if veh == nil {
		return repo.ErrNotFound
	}

	parked, err := s.Transactions.ExistsForVehicle(ctx, vehicleID)
	if err != nil {
		return fmt.Errorf("check parked: %w", err)
	}
	if parked {
		return repo.ErrVehicleParked
	}

	return s.Vehicles.Delete(ctx, vehicleID)
}
