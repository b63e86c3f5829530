// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/gigledger/backend/config"
	"github.com/gigledger/backend/internal/application/adapter"
	"github.com/gigledger/backend/internal/application/usecase/auth"
	"github.com/gigledger/backend/internal/application/usecase/expense"
	"github.com/gigledger/backend/internal/application/usecase/settings"
	"github.com/gigledger/backend/internal/application/usecase/shift"
	"github.com/gigledger/backend/internal/application/usecase/statistics"
	"github.com/gigledger/backend/internal/infra/db"
	"github.com/gigledger/backend/internal/infra/server/router"
	"github.com/gigledger/backend/internal/integration/adapters"
	"github.com/gigledger/backend/internal/integration/cache"
	"github.com/gigledger/backend/internal/integration/docstore"
	"github.com/gigledger/backend/internal/integration/email"
	"github.com/gigledger/backend/internal/integration/email/templates"
	"github.com/gigledger/backend/internal/integration/entrypoint/controller"
	"github.com/gigledger/backend/internal/integration/entrypoint/middleware"
	"github.com/gigledger/backend/internal/integration/persistence"
)

// Infrastructure carries the connections the injector wires into repositories.
type Infrastructure struct {
	DB *gorm.DB
	// Redis enables the statistics cache when set.
	Redis *redis.Client
	// Firestore is required when the storage backend is firestore.
	Firestore *firestore.Client
	// Clock defaults to the system clock.
	Clock adapter.Clock
	// EmailSender defaults to Resend, or the in-memory outbox without an API key.
	EmailSender adapter.EmailSender
}

// Injector holds all application dependencies.
type Injector struct {
	Config           *config.Config
	DB               *gorm.DB
	Router           *router.Router
	LoginRateLimiter *middleware.RateLimiter
	Tokens           persistence.TokenRepository
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, infra Infrastructure) (*Injector, error) {
	location := cfg.Earnings.Location()

	clock := infra.Clock
	if clock == nil {
		clock = adapters.NewSystemClock()
	}

	// Create repositories
	userRepo := persistence.NewUserRepository(infra.DB)
	tokenRepo := persistence.NewTokenRepository(infra.DB)
	settingsRepo := persistence.NewSettingsRepository(infra.DB)

	shiftRepo, expenseRepo, err := newRecordRepositories(cfg.Storage, infra)
	if err != nil {
		return nil, err
	}

	statsCache := cache.NewNoopStatisticsCache()
	var cacheHealthChecker controller.HealthChecker
	if infra.Redis != nil {
		statsCache = cache.NewStatisticsCache(infra.Redis, cfg.Redis.StatisticsCacheTTL)
		cacheHealthChecker = func(ctx context.Context) bool {
			return db.PingRedis(ctx, infra.Redis)
		}
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)

	renderer, err := templates.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load email templates: %w", err)
	}
	emailSender, err := newEmailSender(cfg.Email, infra.EmailSender)
	if err != nil {
		return nil, err
	}
	emailService := email.NewService(emailSender, renderer)

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, settingsRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Email.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
	setPinUseCase := auth.NewSetPinUseCase(userRepo, passwordService)
	removePinUseCase := auth.NewRemovePinUseCase(userRepo)
	loginWithPinUseCase := auth.NewLoginWithPinUseCase(userRepo, passwordService, tokenService)
	getProfileUseCase := auth.NewGetProfileUseCase(userRepo)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(
		userRepo, shiftRepo, expenseRepo, settingsRepo, statsCache, passwordService, tokenService,
	)

	// Create controllers
	dbHealthChecker := func(ctx context.Context) bool {
		return db.PingGorm(ctx, infra.DB)
	}
	healthController := controller.NewHealthController(dbHealthChecker, cacheHealthChecker, cfg.Storage.Backend)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
		setPinUseCase,
		removePinUseCase,
		loginWithPinUseCase,
	)

	userController := controller.NewUserController(
		getProfileUseCase,
		deleteAccountUseCase,
	)

	shiftController := controller.NewShiftController(
		shift.NewCreateShiftUseCase(shiftRepo, statsCache, clock, location),
		shift.NewGetShiftUseCase(shiftRepo, settingsRepo, cfg.Earnings.WorkingDaysPerMonth),
		shift.NewListShiftsUseCase(shiftRepo, clock, location),
		shift.NewUpdateShiftUseCase(shiftRepo, statsCache, clock, location),
		shift.NewDeleteShiftUseCase(shiftRepo, statsCache, clock),
		shift.NewRestoreShiftUseCase(shiftRepo, statsCache, clock),
		shift.NewPermanentDeleteShiftUseCase(shiftRepo),
		location,
	)

	expenseController := controller.NewExpenseController(
		expense.NewCreateExpenseUseCase(expenseRepo, shiftRepo, statsCache, clock, location),
		expense.NewGetExpenseUseCase(expenseRepo),
		expense.NewListExpensesUseCase(expenseRepo, clock, location),
		expense.NewUpdateExpenseUseCase(expenseRepo, shiftRepo, statsCache, clock, location),
		expense.NewDeleteExpenseUseCase(expenseRepo, statsCache, clock),
		expense.NewRestoreExpenseUseCase(expenseRepo, statsCache, clock),
		expense.NewPermanentDeleteExpenseUseCase(expenseRepo),
		location,
	)

	settingsController := controller.NewSettingsController(
		settings.NewGetSettingsUseCase(settingsRepo),
		settings.NewUpdateSettingsUseCase(settingsRepo),
	)

	statisticsController := controller.NewStatisticsController(
		statistics.NewGetStatisticsUseCase(shiftRepo, expenseRepo, statsCache, clock, location),
		statistics.NewWatchStatisticsUseCase(shiftRepo, expenseRepo, clock, location),
		statistics.NewGetDashboardUseCase(shiftRepo, expenseRepo, settingsRepo, clock, location),
		location,
		cfg.Server.StreamHeartbeat,
	)

	// Create middleware
	loginRateLimiter := middleware.NewRateLimiter(cfg.Server.LoginMaxAttempts, cfg.Server.LoginWindow)
	if cfg.Server.Environment == "test" || cfg.Server.Environment == "e2e" {
		loginRateLimiter.Disable()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		userController,
		shiftController,
		expenseController,
		settingsController,
		statisticsController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config:           cfg,
		DB:               infra.DB,
		Router:           r,
		LoginRateLimiter: loginRateLimiter,
		Tokens:           tokenRepo,
	}, nil
}

// newRecordRepositories selects the shift and expense store.
func newRecordRepositories(cfg config.StorageConfig, infra Infrastructure) (adapter.ShiftRepository, adapter.ExpenseRepository, error) {
	switch cfg.Backend {
	case config.StorageBackendFirestore:
		if infra.Firestore == nil {
			return nil, nil, fmt.Errorf("storage backend %q requires a firestore client", cfg.Backend)
		}
		return docstore.NewShiftRepository(infra.Firestore), docstore.NewExpenseRepository(infra.Firestore), nil
	case config.StorageBackendPostgres, "":
		return persistence.NewShiftRepository(infra.DB, cfg.ObservePollInterval),
			persistence.NewExpenseRepository(infra.DB, cfg.ObservePollInterval),
			nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func newEmailSender(cfg config.EmailConfig, override adapter.EmailSender) (adapter.EmailSender, error) {
	if override != nil {
		return override, nil
	}
	if cfg.ResendAPIKey == "" {
		slog.Warn("RESEND_API_KEY not set, emails are kept in the outbox and not delivered")
		return email.NewOutbox(), nil
	}
	sender, err := email.NewResendClient(cfg.ResendAPIKey, cfg.ResendAPIURL, cfg.FromName, cfg.FromEmail)
	if err != nil {
		return nil, err
	}
	return sender, nil
}
