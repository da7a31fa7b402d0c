package testutils

import (
	"context"
	"os"
	"strconv"
	"testing"

	"terminal-terrace/conduit/internal/model"
	dbPkg "terminal-terrace/conduit/packages/database"

	"github.com/alicebob/miniredis/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates a test database connection.
// With TEST_DATABASE_DSN set it connects to postgres and returns a transaction
// that is rolled back on cleanup; otherwise every test gets its own in-memory
// SQLite database. All tables are migrated before returning.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if dsn := os.Getenv("TEST_DATABASE_DSN"); dsn != "" {
		return setupPostgres(t, dsn)
	}

	db, err := dbPkg.InitSQLite(&dbPkg.SQLiteConfig{
		ServiceName: "conduit-test",
		Path:        ":memory:",
		LogLevel:    "silent",
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func setupPostgres(t *testing.T, dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent), // Suppress logs in tests
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := model.InitTable(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	// Return a transaction for automatic rollback
	tx := db.Begin()
	t.Cleanup(func() {
		tx.Rollback()
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	return tx
}

// SetupTestRedis creates a test Redis connection.
// With REDIS_HOST set it connects to that server (DB 15, flushed on cleanup) and
// returns nil when it is not reachable; otherwise it starts an in-process
// miniredis server that lives for the duration of the test.
func SetupTestRedis(t *testing.T) *dbPkg.RedisClient {
	t.Helper()

	if redisHost := os.Getenv("REDIS_HOST"); redisHost != "" {
		return setupRealRedis(t, redisHost)
	}

	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	if err != nil {
		t.Fatalf("Failed to parse miniredis port: %v", err)
	}
	redisClient, err := dbPkg.InitRedis(&dbPkg.RedisConfig{
		ServiceName: "conduit-test",
		Host:        mr.Host(),
		Port:        port,
	})
	if err != nil {
		t.Fatalf("Failed to connect to miniredis: %v", err)
	}
	t.Cleanup(func() {
		redisClient.Close()
	})
	return redisClient
}

func setupRealRedis(t *testing.T, redisHost string) *dbPkg.RedisClient {
	redisPort, err := strconv.Atoi(getEnvOrDefault("REDIS_PORT", "6380"))
	if err != nil || redisPort == 0 {
		redisPort = 6380
	}

	// Try to initialize Redis, but don't fail if it's not available
	redisClient, err := dbPkg.InitRedis(&dbPkg.RedisConfig{
		ServiceName: "conduit-test",
		Host:        redisHost,
		Port:        redisPort,
		DB:          15,
	})
	if err != nil {
		return nil
	}

	t.Cleanup(func() {
		redisClient.FlushDB(context.Background())
		redisClient.Close()
	})
	return redisClient
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
