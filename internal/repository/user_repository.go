package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	models "github.com/btair/btair/internal"
)

type UserRepository struct {
	db DBConn
}

func NewUserRepository(db DBConn) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUserWithCustomer registers a user and its customer profile in one
// transaction. The guarded insert enforces email uniqueness.
func (r *UserRepository) CreateUserWithCustomer(ctx context.Context, user *models.User, customer *models.Customer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
        INSERT INTO users (name, email, password, role, is_active, created_at)
        SELECT $1, $2, $3, $4, $5, $6
        WHERE NOT EXISTS (SELECT 1 FROM users WHERE email = $2)
        RETURNING id
    `, user.Name, user.Email, user.Password, user.Role, user.IsActive, user.CreatedAt).Scan(&user.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrEmailTaken
	}
	if err != nil {
		return err
	}

	customer.UserID = user.ID
	err = tx.QueryRow(ctx, `
        INSERT INTO customers (user_id, address, phone_number, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `, customer.UserID, customer.Address, customer.PhoneNumber, customer.CreatedAt).Scan(&customer.ID)
	if err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `SELECT id, name, email, password, role, is_active, created_at FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, `SELECT id, name, email, password, role, is_active, created_at FROM users WHERE id = $1`, id)
}

func (r *UserRepository) getUser(ctx context.Context, query string, arg interface{}) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, password, role, is_active, created_at FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) UpdateUserRole(ctx context.Context, id int64, role string) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $2 WHERE id = $1`, id, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUserWithCustomer(ctx context.Context, userID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM customers WHERE user_id = $1`, userID); err != nil {
		return err
	}
	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrUserNotFound
	}
	return tx.Commit(ctx)
}

const customerSelect = `
        SELECT C.id, C.user_id, U.name, U.email, C.address, C.phone_number, C.created_at
        FROM customers C
        JOIN users U ON U.id = C.user_id
    `

func (r *UserRepository) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	return r.getCustomer(ctx, customerSelect+" WHERE C.id = $1", id)
}

func (r *UserRepository) GetCustomerByUserID(ctx context.Context, userID int64) (*models.Customer, error) {
	return r.getCustomer(ctx, customerSelect+" WHERE C.user_id = $1", userID)
}

func (r *UserRepository) getCustomer(ctx context.Context, query string, arg interface{}) (*models.Customer, error) {
	var c models.Customer
	err := r.db.QueryRow(ctx, query, arg).Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Address, &c.PhoneNumber, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *UserRepository) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	rows, err := r.db.Query(ctx, customerSelect+" ORDER BY C.id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []models.Customer
	for rows.Next() {
		var c models.Customer
		if err = rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Address, &c.PhoneNumber, &c.CreatedAt); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *UserRepository) UpdateCustomer(ctx context.Context, customer *models.Customer) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE customers SET address = $2, phone_number = $3 WHERE id = $1`,
		customer.ID, customer.Address, customer.PhoneNumber)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return models.ErrCustomerNotFound
	}
	if _, err = tx.Exec(ctx, `UPDATE users SET name = $2 WHERE id = $1`, customer.UserID, customer.Name); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) DeleteCustomerWithUser(ctx context.Context, customerID int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var userID int64
	err = tx.QueryRow(ctx, `DELETE FROM customers WHERE id = $1 RETURNING user_id`, customerID).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.ErrCustomerNotFound
	}
	if err != nil {
		return err
	}
	if _, err = tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *UserRepository) CustomerHasReservations(ctx context.Context, customerID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE customer_id = $1)`, customerID).Scan(&exists)
	return exists, err
}

func (r *UserRepository) CustomerSummary(ctx context.Context, customerID int64) (*models.CustomerSummary, error) {
	summary := models.CustomerSummary{CustomerID: customerID}
	err := r.db.QueryRow(ctx, `
        SELECT
            (SELECT COUNT(*) FROM reservations WHERE customer_id = $1),
            (SELECT COUNT(*) FROM passengers WHERE customer_id = $1),
            (SELECT COALESCE(SUM(P.amount), 0) FROM payments P
                JOIN reservations R ON R.id = P.reservation_id
                WHERE R.customer_id = $1 AND P.status = 'Completed')
    `, customerID).Scan(&summary.ReservationCount, &summary.PassengerCount, &summary.TotalSpent)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
