// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"fmt"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/gigledger/backend/config"
	"github.com/gigledger/backend/internal/application/adapter"
	infradb "github.com/gigledger/backend/internal/infra/db"
	"github.com/gigledger/backend/internal/infra/dependency"
	"github.com/gigledger/backend/internal/integration/adapters"
	"github.com/gigledger/backend/internal/integration/persistence"
	"github.com/gigledger/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

// suite is the server and its backing fakes, shared by every scenario.
type suite struct {
	cfg         *config.Config
	db          *mock.Db
	redis       *redis.Client
	clock       *mock.Time
	emailAPI    *mock.ApiMock
	server      *httptest.Server
	tokens      adapter.TokenService
	resetTokens adapter.PasswordResetTokenService
	passwords   adapter.PasswordService
}

var (
	suiteOnce sync.Once
	shared    *suite
	suiteErr  error
)

func startSuite() (*suite, error) {
	suiteOnce.Do(func() {
		shared, suiteErr = newSuite()
	})
	return shared, suiteErr
}

func newSuite() (*suite, error) {
	gin.SetMode(gin.TestMode)

	emailAPI := mock.NewApiServer()
	emailAPI.Start()

	cfg := config.Load()
	cfg.Server.Environment = "test"
	cfg.Server.StreamHeartbeat = time.Second
	cfg.JWT.Secret = testJWTSecret
	cfg.Storage.Backend = config.StorageBackendPostgres
	cfg.Storage.ObservePollInterval = 100 * time.Millisecond
	cfg.Earnings.Timezone = "UTC"
	cfg.Email.ResendAPIKey = "re_test_key"
	cfg.Email.ResendAPIURL = emailAPI.GetUrl()
	cfg.Email.AppBaseURL = "https://app.gigledger.test"

	testDB := mock.NewDb(infradb.Models())
	redisClient := mock.NewRedis()
	clock := mock.NewTime()

	injector, err := dependency.NewInjector(cfg, dependency.Infrastructure{
		DB:    testDB.DbConn,
		Redis: redisClient,
		Clock: clock,
	})
	if err != nil {
		emailAPI.Close()
		return nil, fmt.Errorf("failed to build injector: %w", err)
	}

	tokenRepo := persistence.NewTokenRepository(testDB.DbConn)

	return &suite{
		cfg:         cfg,
		db:          testDB,
		redis:       redisClient,
		clock:       clock,
		emailAPI:    emailAPI,
		server:      httptest.NewServer(injector.Router.Setup(cfg.Server.Environment)),
		tokens:      adapters.NewTokenService(cfg.JWT, tokenRepo),
		resetTokens: adapters.NewPasswordResetTokenService(tokenRepo),
		passwords:   adapters.NewPasswordService(),
	}, nil
}

func (s *suite) close() {
	s.server.Close()
	s.emailAPI.Close()
}

// reset puts the shared state back to empty between scenarios.
func (s *suite) reset() error {
	if err := s.db.ClearDB(); err != nil {
		return err
	}
	if err := mock.ClearRedis(s.redis); err != nil {
		return err
	}
	s.emailAPI.Clear()
	s.clock.Reset()
	return nil
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		if _, err := startSuite(); err != nil {
			panic(err)
		}
	})

	ctx.AfterSuite(func() {
		if shared != nil {
			shared.close()
		}
	})
}
