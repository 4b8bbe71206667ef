package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/ports"
)

type CustomerService struct {
	users ports.UserRepository
}

func NewCustomerService(users ports.UserRepository) *CustomerService {
	return &CustomerService{users: users}
}

func (s *CustomerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.users.ListCustomers(ctx)
}

func (s *CustomerService) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return s.users.GetCustomer(ctx, id)
}

// CreateCustomer provisions a customer account on behalf of staff. The user
// row and the customer profile are created together.
func (s *CustomerService) CreateCustomer(ctx context.Context, req *models.RegisterRequest) (*models.Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hash),
		Role:      models.RoleCustomer,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	customer := &models.Customer{
		Address:     req.Address,
		PhoneNumber: req.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}
	if err = s.users.CreateUserWithCustomer(ctx, user, customer); err != nil {
		return nil, err
	}
	return s.users.GetCustomer(ctx, customer.ID)
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, id int64, req *models.UpdateCustomerRequest) (*models.Customer, error) {
	customer, err := s.users.GetCustomer(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		customer.Name = req.Name
	}
	if req.Address != "" {
		customer.Address = req.Address
	}
	if req.PhoneNumber != "" {
		customer.PhoneNumber = req.PhoneNumber
	}

	if err = s.users.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return s.users.GetCustomer(ctx, id)
}

// DeleteCustomer refuses to remove customers with reservations so booking
// history keeps its owner.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id int64) error {
	if _, err := s.users.GetCustomer(ctx, id); err != nil {
		return err
	}

	hasReservations, err := s.users.CustomerHasReservations(ctx, id)
	if err != nil {
		return err
	}
	if hasReservations {
		return models.ErrCustomerHasBookings
	}
	return s.users.DeleteCustomerWithUser(ctx, id)
}

func (s *CustomerService) CustomerSummary(ctx context.Context, id int64) (*models.CustomerSummary, error) {
	if _, err := s.users.GetCustomer(ctx, id); err != nil {
		return nil, err
	}
	return s.users.CustomerSummary(ctx, id)
}
