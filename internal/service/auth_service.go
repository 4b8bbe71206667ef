package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/auth"
	"github.com/btair/btair/internal/ports"
)

type AuthService struct {
	users  ports.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users ports.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register creates a user with the Customer role plus its customer profile,
// then signs the caller in.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
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

	return s.authResponse(user, customer.ID)
}

func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, models.ErrInvalidCredentials
	}

	var customerID int64
	customer, err := s.users.GetCustomerByUserID(ctx, user.ID)
	switch {
	case err == nil:
		customerID = customer.ID
	case errors.Is(err, models.ErrCustomerNotFound):
		// Staff and admin accounts have no customer profile.
	default:
		return nil, err
	}

	return s.authResponse(user, customerID)
}

func (s *AuthService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) ValidateToken(_ context.Context, token string) (bool, error) {
	if _, err := s.tokens.Verify(token); err != nil {
		return false, nil
	}
	return true, nil
}

func (s *AuthService) authResponse(user *models.User, customerID int64) (*models.AuthResponse, error) {
	token, expiry, err := s.tokens.Issue(user, customerID)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		UserID:      user.ID,
		CustomerID:  customerID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        user.Role,
		Token:       token,
		TokenExpiry: expiry,
	}, nil
}
