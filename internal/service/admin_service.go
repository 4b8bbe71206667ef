package service

import (
	"context"
	"errors"
	"time"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/ports"
	"github.com/btair/btair/internal/seatmap"
)

const recentActivityLimit = 10

type AdminService struct {
	aircraft ports.AircraftRepository
	users    ports.UserRepository
	stats    ports.StatsRepository
}

func NewAdminService(aircraft ports.AircraftRepository, users ports.UserRepository, stats ports.StatsRepository) *AdminService {
	return &AdminService{aircraft: aircraft, users: users, stats: stats}
}

func (s *AdminService) ListAircraft(ctx context.Context) ([]models.Aircraft, error) {
	return s.aircraft.ListAircraft(ctx)
}

func (s *AdminService) GetAircraft(ctx context.Context, id int64) (*models.Aircraft, error) {
	return s.aircraft.GetAircraft(ctx, id)
}

func (s *AdminService) CreateAircraft(ctx context.Context, req *models.CreateAircraftRequest) (*models.Aircraft, error) {
	layout := req.SeatLayout
	if layout == "" {
		layout = seatmap.LayoutByName("").Name
	}

	now := time.Now()
	aircraft := &models.Aircraft{
		Model:           req.Model,
		SeatingCapacity: req.SeatingCapacity,
		Status:          models.AircraftAvailable,
		Registration:    req.Registration,
		SeatLayout:      layout,
		LastMaintenance: now,
		NextMaintenance: now.AddDate(0, 6, 0),
		CreatedAt:       now,
	}
	return s.aircraft.CreateAircraft(ctx, aircraft)
}

func (s *AdminService) UpdateAircraft(ctx context.Context, id int64, req *models.UpdateAircraftRequest) (*models.Aircraft, error) {
	aircraft, err := s.aircraft.GetAircraft(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Model != "" {
		aircraft.Model = req.Model
	}
	if req.SeatingCapacity != nil {
		aircraft.SeatingCapacity = *req.SeatingCapacity
	}
	if req.Status != "" {
		aircraft.Status = models.AircraftStatus(req.Status)
	}
	if req.Registration != "" {
		aircraft.Registration = req.Registration
	}
	if req.SeatLayout != "" {
		aircraft.SeatLayout = req.SeatLayout
	}
	if req.NextMaintenance != nil {
		aircraft.NextMaintenance = *req.NextMaintenance
	}

	if err = s.aircraft.UpdateAircraft(ctx, aircraft); err != nil {
		return nil, err
	}
	return aircraft, nil
}

// DeleteAircraft refuses to remove aircraft referenced by any flight.
func (s *AdminService) DeleteAircraft(ctx context.Context, id int64) error {
	inUse, err := s.aircraft.AircraftHasFlights(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return models.ErrAircraftInUse
	}
	return s.aircraft.DeleteAircraft(ctx, id)
}

func (s *AdminService) Statistics(ctx context.Context) (*models.SystemStatistics, error) {
	return s.stats.SystemStatistics(ctx)
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *AdminService) UpdateUserRole(ctx context.Context, userID int64, role string) error {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.users.UpdateUserRole(ctx, userID, role)
}

// DeleteUser removes an account unless it is an admin or its customer
// profile has reservations.
func (s *AdminService) DeleteUser(ctx context.Context, userID int64) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return models.ErrAdminUndeletable
	}

	customer, err := s.users.GetCustomerByUserID(ctx, userID)
	switch {
	case err == nil:
		hasReservations, err := s.users.CustomerHasReservations(ctx, customer.ID)
		if err != nil {
			return err
		}
		if hasReservations {
			return models.ErrUserHasBookings
		}
	case errors.Is(err, models.ErrCustomerNotFound):
		// Staff accounts have no customer profile.
	default:
		return err
	}

	return s.users.DeleteUserWithCustomer(ctx, userID)
}

func (s *AdminService) RecentActivities(ctx context.Context) ([]models.Activity, error) {
	return s.stats.RecentActivities(ctx, recentActivityLimit)
}
