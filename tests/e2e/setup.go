//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"coach-booking/cmd/bootstrap"
	"coach-booking/cmd/bootstrap/components"
	"coach-booking/internal/infra/db"
	"coach-booking/internal/pkg/clock"
	"coach-booking/internal/pkg/config"
	"coach-booking/tests/common/dbtest"

	"github.com/docker/go-connections/nat"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/fx"
)

const (
	pgUser     = "coach"
	pgPassword = "coachpass"
	pgImage    = "postgres:17"
	pgPort     = nat.Port("5432/tcp")
)

// FixedNow is a Monday; scenarios book slots later in the same week.
var FixedNow = time.Date(2024, time.March, 4, 8, 0, 0, 0, time.UTC)

var (
	pgOnce      sync.Once
	pgContainer testcontainers.Container
	pgStartErr  error
)

// pgEndpoint is where the shared container is reachable from the test process.
type pgEndpoint struct {
	host string
	port nat.Port
}

func (e pgEndpoint) dsn(database string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, e.host, e.port.Port(), database)
}

func (e pgEndpoint) dbConfig(database string) config.DBConfig {
	return config.DBConfig{
		Host:           e.host,
		Port:           e.port.Port(),
		User:           pgUser,
		Password:       pgPassword,
		DBName:         database,
		SSLMode:        "disable",
		TimeZone:       "UTC",
		MaxConns:       20,
		ConnectTimeout: 10 * time.Second,
		TxMaxRetries:   3,
		TxRetryBackoff: 20 * time.Millisecond,
	}
}

// sharedPostgres starts one container per test binary and returns its endpoint.
func sharedPostgres(t *testing.T) pgEndpoint {
	t.Helper()

	pgOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		pgContainer, pgStartErr = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        pgImage,
				ExposedPorts: []string{string(pgPort)},
				Env: map[string]string{
					"POSTGRES_USER":     pgUser,
					"POSTGRES_PASSWORD": pgPassword,
					"POSTGRES_DB":       "postgres",
				},
				// データはRAMに置き、耐久性系の設定は切る
				Tmpfs: map[string]string{"/var/lib/postgresql/data": "rw,size=512m"},
				Cmd: []string{
					"postgres",
					"-c", "fsync=off",
					"-c", "synchronous_commit=off",
					"-c", "full_page_writes=off",
					"-c", "max_connections=200",
				},
				WaitingFor: wait.ForSQL(pgPort, "pgx", func(host string, port nat.Port) string {
					return pgEndpoint{host: host, port: port}.dsn("postgres")
				}).WithStartupTimeout(time.Minute),
				Labels: map[string]string{"purpose": "coach-booking-e2e"},
			},
			Started: true,
		})
	})
	require.NoError(t, pgStartErr, "PostgreSQLコンテナの起動に失敗")

	ctx := context.Background()
	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, pgPort)
	require.NoError(t, err)

	return pgEndpoint{host: host, port: port}
}

// createDatabase creates a throwaway database and drops it when the test ends.
// The container can accept connections slightly before CREATE DATABASE succeeds, hence the retry.
func createDatabase(t *testing.T, ep pgEndpoint) string {
	t.Helper()

	name := "booking_" + strings.ReplaceAll(uuid.NewString(), "-", "")

	exec := func(stmt string) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, ep.dsn("postgres"))
		if err != nil {
			return err
		}
		defer admin.Close()
		_, err = admin.Exec(ctx, stmt)
		return err
	}

	var err error
	for attempt := range 5 {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}
		if err = exec("CREATE DATABASE " + name); err == nil {
			break
		}
		slog.Warn("retrying database creation", "attempt", attempt+1, "error", err.Error())
	}
	require.NoError(t, err, "テスト用データベースの作成に失敗")

	t.Cleanup(func() {
		if err := exec("DROP DATABASE IF EXISTS " + name + " WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", name, "error", err.Error())
		}
	})

	return name
}

// applyMigrations runs migrations/*.sql in file name order, the same files cmd/migrate hands to atlas.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := findMigrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	slices.Sort(files)

	for _, file := range files {
		body, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(body)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}
	}
	return nil
}

// go test runs with the package directory as cwd, so walk up until migrations/ shows up.
func findMigrationsDir() (string, error) {
	dir := "migrations"
	for range 4 {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, nil
		}
		dir = filepath.Join("..", dir)
	}
	return "", fmt.Errorf("migrations directory not found")
}

// startApp wires the production modules against the test database with the clock pinned.
func startApp(t *testing.T, pool *pgxpool.Pool, dbConfig config.DBConfig, clk *clock.MockClock) (*gin.Engine, config.Config) {
	t.Helper()

	cfg := config.NewTestConfig()
	cfg.DB = dbConfig

	var router *gin.Engine
	app := fx.New(
		fx.Supply(cfg),
		fx.Provide(func() *pgxpool.Pool { return pool }),
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.CacheModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Decorate(func(clock.Clock) clock.Clock { return clk }),
		fx.Populate(&router),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, app.Start(ctx), "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	return router, cfg
}

// SharedSuite gives each e2e suite its own database, router and controllable clock.
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	DB     *pgxpool.Pool
	Config config.Config
	Clock  *clock.MockClock
}

func (s *SharedSuite) SetupSuite() {
	t := s.T()
	gin.SetMode(gin.TestMode)

	ep := sharedPostgres(t)
	dbConfig := ep.dbConfig(createDatabase(t, ep))

	pool, cleanup, err := db.Connect(context.Background(), dbConfig)
	require.NoError(t, err, "データベース接続に失敗")
	t.Cleanup(cleanup)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, applyMigrations(ctx, pool), "マイグレーションに失敗")
	require.NoError(t, dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	s.DB = pool
	s.Clock = clock.NewMockClock(FixedNow)
	s.Router, s.Config = startApp(t, pool, dbConfig, s.Clock)
}

// SetupSubTest resets tables and time so every s.Run starts from the same state.
func (s *SharedSuite) SetupSubTest() {
	s.Require().NoError(dbtest.ResetDB(s.DB), "Failed to reset database state")
	s.Clock.Set(FixedNow)
}
