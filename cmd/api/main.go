package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	models "github.com/btair/btair/internal"
	"github.com/btair/btair/internal/api"
	"github.com/btair/btair/internal/auth"
	"github.com/btair/btair/internal/cache"
	"github.com/btair/btair/internal/kafka"
	"github.com/btair/btair/internal/ports"
	"github.com/btair/btair/internal/repository"
	"github.com/btair/btair/internal/service"
	"github.com/btair/btair/internal/utils"
	"github.com/btair/btair/pkg/config"
	"github.com/btair/btair/pkg/health"
)

type App struct {
	config   *config.Config
	server   *http.Server
	db       *pgxpool.Pool
	cache    *cache.RedisCache
	producer *kafka.Producer
	tokens   *auth.TokenManager
}

func NewApp(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	if err := a.setupDatabase(ctx); err != nil {
		return fmt.Errorf("database setup failed: %w", err)
	}

	a.setupCache(ctx)
	a.setupProducer()
	a.tokens = auth.NewTokenManager(a.config.Auth.JWTSecret, a.config.Auth.TokenTTL)

	if err := a.setupServer(); err != nil {
		return fmt.Errorf("server setup failed: %w", err)
	}

	return nil
}

func (a *App) setupDatabase(ctx context.Context) error {
	config, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	return nil
}

// setupCache is best effort. The API serves from Postgres when Redis is
// absent or unreachable.
func (a *App) setupCache(ctx context.Context) {
	if a.config.Redis.Addr == "" {
		return
	}

	c := cache.NewRedisCache(a.config.Redis.Addr, a.config.Redis.Password,
		a.config.Redis.DB, a.config.Redis.FlightsTTL)
	if err := c.Ping(ctx); err != nil {
		log.Printf("redis unavailable, flight cache disabled: %v", err)
		c.Close()
		return
	}
	a.cache = c
}

func (a *App) setupProducer() {
	if len(a.config.Kafka.Brokers) == 0 {
		return
	}
	a.producer = kafka.NewProducer(a.config.Kafka.Brokers)
}

func (a *App) setupServer() error {
	services := a.setupServices()
	router := a.setupRouter(services)

	a.server = &http.Server{
		Addr:         a.config.Server.Address,
		Handler:      router,
		WriteTimeout: a.config.Server.WriteTimeout,
		ReadTimeout:  a.config.Server.ReadTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	return nil
}

type Services struct {
	AuthService        ports.AuthService
	FlightService      ports.FlightService
	ReservationService ports.ReservationService
	CustomerService    ports.CustomerService
	AdminService       ports.AdminService
}

func (a *App) setupServices() Services {
	users := repository.NewUserRepository(a.db)
	aircraft := repository.NewAircraftRepository(a.db)
	flights := repository.NewFlightRepository(a.db)
	reservations := repository.NewReservationRepository(a.db)
	stats := repository.NewStatsRepository(a.db)

	var flightCache ports.FlightCache
	if a.cache != nil {
		flightCache = a.cache
	}

	var reservationOpts []service.ReservationOption
	if a.producer != nil {
		reservationOpts = append(reservationOpts,
			service.WithEventProducer(a.producer,
				a.config.Kafka.EventsTopic, a.config.Kafka.NotificationsTopic))
	}

	return Services{
		AuthService:        service.NewAuthService(users, a.tokens),
		FlightService:      service.NewFlightService(flights, aircraft, flightCache),
		ReservationService: service.NewReservationService(reservations, flights, users, reservationOpts...),
		CustomerService:    service.NewCustomerService(users),
		AdminService:       service.NewAdminService(aircraft, users, stats),
	}
}

func (a *App) setupRouter(services Services) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("GET /v1/health", health.HealthGet())

	// Public auth endpoints.
	router.HandleFunc("POST /api/auth/register", jsonOnly(api.RegisterHandler(services.AuthService)))
	router.HandleFunc("POST /api/auth/login", jsonOnly(api.LoginHandler(services.AuthService)))
	router.HandleFunc("POST /api/auth/validate-token", jsonOnly(api.ValidateTokenHandler(services.AuthService)))
	router.HandleFunc("GET /api/auth/user/{userId}", a.protected(api.GetUserHandler(services.AuthService)))

	// Flight catalogue is public; mutations are staff only.
	router.HandleFunc("GET /api/flights", api.ListFlightsHandler(services.FlightService))
	router.HandleFunc("GET /api/flights/search", api.SearchFlightsHandler(services.FlightService))
	router.HandleFunc("POST /api/flights/search", jsonOnly(api.SearchFlightsHandler(services.FlightService)))
	router.HandleFunc("GET /api/flights/{flightId}", api.GetFlightHandler(services.FlightService))
	router.HandleFunc("GET /api/flights/{flightId}/seats", api.ListSeatsHandler(services.FlightService))
	router.HandleFunc("GET /api/flights/aircraft/{aircraftId}/availability",
		api.AircraftAvailabilityHandler(services.FlightService))
	router.HandleFunc("POST /api/flights",
		a.staffOnly(jsonOnly(api.CreateFlightHandler(services.FlightService))))
	router.HandleFunc("PUT /api/flights/{flightId}",
		a.staffOnly(jsonOnly(api.UpdateFlightHandler(services.FlightService))))
	router.HandleFunc("DELETE /api/flights/{flightId}",
		a.staffOnly(api.DeleteFlightHandler(services.FlightService)))

	// Reservations, passengers and payments require a signed in user.
	router.HandleFunc("GET /api/reservations/{reservationId}",
		a.protected(api.GetReservationHandler(services.ReservationService)))
	router.HandleFunc("PUT /api/reservations/{reservationId}",
		a.protected(jsonOnly(api.UpdateReservationHandler(services.ReservationService))))
	router.HandleFunc("DELETE /api/reservations/{reservationId}",
		a.protected(api.CancelReservationHandler(services.ReservationService)))
	router.HandleFunc("GET /api/reservations/customer/{customerId}",
		a.protected(api.CustomerReservationsHandler(services.ReservationService)))
	router.HandleFunc("POST /api/reservations/customer/{customerId}",
		a.protected(jsonOnly(api.CreateReservationHandler(services.ReservationService))))
	router.HandleFunc("POST /api/reservations/payments",
		a.protected(jsonOnly(api.CreatePaymentHandler(services.ReservationService))))
	router.HandleFunc("GET /api/reservations/customers/{customerId}/passengers",
		a.protected(api.CustomerPassengersHandler(services.ReservationService)))
	router.HandleFunc("POST /api/reservations/customers/{customerId}/passengers",
		a.protected(jsonOnly(api.CreatePassengerHandler(services.ReservationService))))

	// Customer administration is staff only, except self service updates.
	router.HandleFunc("GET /api/customers",
		a.staffOnly(api.ListCustomersHandler(services.CustomerService)))
	router.HandleFunc("POST /api/customers",
		a.staffOnly(jsonOnly(api.CreateCustomerHandler(services.CustomerService))))
	router.HandleFunc("GET /api/customers/{customerId}",
		a.protected(api.GetCustomerHandler(services.CustomerService)))
	router.HandleFunc("PUT /api/customers/{customerId}",
		a.protected(jsonOnly(api.UpdateCustomerHandler(services.CustomerService))))
	router.HandleFunc("DELETE /api/customers/{customerId}",
		a.staffOnly(api.DeleteCustomerHandler(services.CustomerService)))
	router.HandleFunc("GET /api/customers/{customerId}/summary",
		a.protected(api.CustomerSummaryHandler(services.CustomerService)))

	// Admin surface.
	router.HandleFunc("GET /api/admin/aircraft",
		a.staffOnly(api.ListAircraftHandler(services.AdminService)))
	router.HandleFunc("POST /api/admin/aircraft",
		a.adminOnly(jsonOnly(api.CreateAircraftHandler(services.AdminService))))
	router.HandleFunc("GET /api/admin/aircraft/{aircraftId}",
		a.staffOnly(api.GetAircraftHandler(services.AdminService)))
	router.HandleFunc("PUT /api/admin/aircraft/{aircraftId}",
		a.adminOnly(jsonOnly(api.UpdateAircraftHandler(services.AdminService))))
	router.HandleFunc("DELETE /api/admin/aircraft/{aircraftId}",
		a.adminOnly(api.DeleteAircraftHandler(services.AdminService)))
	router.HandleFunc("GET /api/admin/statistics",
		a.staffOnly(api.StatisticsHandler(services.AdminService)))
	router.HandleFunc("GET /api/admin/users",
		a.adminOnly(api.ListUsersHandler(services.AdminService)))
	router.HandleFunc("PUT /api/admin/users/{userId}/role",
		a.adminOnly(jsonOnly(api.UpdateUserRoleHandler(services.AdminService))))
	router.HandleFunc("DELETE /api/admin/users/{userId}",
		a.adminOnly(api.DeleteUserHandler(services.AdminService)))
	router.HandleFunc("GET /api/admin/recent-activities",
		a.staffOnly(api.RecentActivitiesHandler(services.AdminService)))
	router.HandleFunc("POST /api/admin/flights/{flightId}/seats",
		a.adminOnly(api.GenerateSeatsHandler(services.FlightService)))

	return router
}

func (a *App) protected(next http.HandlerFunc) http.HandlerFunc {
	return auth.Protected(a.tokens, next)
}

// jsonOnly guards the body accepting routes.
func jsonOnly(next http.HandlerFunc) http.HandlerFunc {
	return utils.AllowedContentTypes(next, "application/json")
}

func (a *App) staffOnly(next http.HandlerFunc) http.HandlerFunc {
	return auth.Protected(a.tokens, next, models.RoleStaff, models.RoleAdmin)
}

func (a *App) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return auth.Protected(a.tokens, next, models.RoleAdmin)
}

func (a *App) Run(ctx context.Context) error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Printf("Starting server on %s", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
		log.Println("Starting graceful shutdown")
		return a.Shutdown(ctx)
	case <-ctx.Done():
		return a.Shutdown(ctx)
	}
}

func (a *App) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			log.Printf("kafka producer close failed: %v", err)
		}
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			log.Printf("redis close failed: %v", err)
		}
	}
	if a.db != nil {
		a.db.Close()
	}

	return nil
}

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	app := NewApp(cfg)
	if err := app.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
