// Package storetest opens a migrated in-memory store for tests.
package storetest

import (
	"context"
	"fmt"
	"testing"

	"github.com/CUknot/meetroom/database"
	"github.com/CUknot/meetroom/models"
	"github.com/CUknot/meetroom/repository"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a store backed by a private in-memory SQLite database.
func Open(t testing.TB) (*repository.Store, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the shared in-memory database alive and
	// serializes writers the way SQLite requires.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return repository.New(db), db
}

// User creates a user with a throwaway password.
func User(t testing.TB, store *repository.Store, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Password: "secret123"}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

// Room creates an active room owned by creator.
func Room(t testing.TB, store *repository.Store, creator *models.User, sessionID string) *models.Room {
	t.Helper()
	r := &models.Room{Name: "room " + sessionID, SessionID: sessionID, CreatedBy: creator.ID}
	require.NoError(t, store.CreateRoom(context.Background(), r))
	return r
}
