package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/mocks"
	"github.com/btair/btair/internal/service"
)

func TestUpdateCustomerPartial(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	svc := service.NewCustomerService(users)

	existing := &models.Customer{
		ID: 5, UserID: 9, Name: "Jane Doe", Email: "jane@example.com",
		Address: "Old street 1", PhoneNumber: "+37060000000",
	}
	users.On("GetCustomer", ctx, int64(5)).Return(existing, nil).Once()
	users.On("UpdateCustomer", ctx, mock.AnythingOfType("*models.Customer")).
		Run(func(args mock.Arguments) {
			c := args.Get(1).(*models.Customer)
			assert.Equal(t, "New street 2", c.Address)
			assert.Equal(t, "Jane Doe", c.Name)
			assert.Equal(t, "+37060000000", c.PhoneNumber)
		}).
		Return(nil)
	users.On("GetCustomer", ctx, int64(5)).Return(&models.Customer{
		ID: 5, Name: "Jane Doe", Address: "New street 2", PhoneNumber: "+37060000000",
	}, nil).Once()

	updated, err := svc.UpdateCustomer(ctx, 5, &models.UpdateCustomerRequest{Address: "New street 2"})

	assert.NoError(t, err)
	assert.Equal(t, "New street 2", updated.Address)
	users.AssertExpectations(t)
}

func TestDeleteCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("refuses customer with reservations", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		svc := service.NewCustomerService(users)

		users.On("GetCustomer", ctx, int64(5)).Return(&models.Customer{ID: 5}, nil)
		users.On("CustomerHasReservations", ctx, int64(5)).Return(true, nil)

		err := svc.DeleteCustomer(ctx, 5)
		assert.ErrorIs(t, err, models.ErrCustomerHasBookings)
		users.AssertNotCalled(t, "DeleteCustomerWithUser", ctx, int64(5))
	})

	t.Run("deletes customer and backing user", func(t *testing.T) {
		users := new(mocks.MockUserRepository)
		svc := service.NewCustomerService(users)

		users.On("GetCustomer", ctx, int64(5)).Return(&models.Customer{ID: 5}, nil)
		users.On("CustomerHasReservations", ctx, int64(5)).Return(false, nil)
		users.On("DeleteCustomerWithUser", ctx, int64(5)).Return(nil)

		assert.NoError(t, svc.DeleteCustomer(ctx, 5))
		users.AssertExpectations(t)
	})
}

func TestCustomerSummary(t *testing.T) {
	ctx := context.Background()
	users := new(mocks.MockUserRepository)
	svc := service.NewCustomerService(users)

	users.On("GetCustomer", ctx, int64(5)).Return(&models.Customer{ID: 5}, nil)
	users.On("CustomerSummary", ctx, int64(5)).Return(&models.CustomerSummary{
		CustomerID: 5, ReservationCount: 3, PassengerCount: 2, TotalSpent: 840.5,
	}, nil)

	summary, err := svc.CustomerSummary(ctx, 5)

	assert.NoError(t, err)
	assert.Equal(t, 3, summary.ReservationCount)
	assert.Equal(t, 840.5, summary.TotalSpent)
}
