package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/lumastory/lumastory/internal/domain/user"
	"github.com/lumastory/lumastory/internal/infrastructure/persistence/models"
	"github.com/lumastory/lumastory/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// every pooled connection would open its own in-memory database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(models.All()...)
	require.NoError(t, err)

	return db
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func createUser(t *testing.T, db *gorm.DB, id, email string) *user.User {
	t.Helper()

	u, err := user.NewUser(id, email, "Parent "+id)
	require.NoError(t, err)
	require.NoError(t, NewUserRepository(db, testLogger()).Create(context.Background(), u))
	return u
}
