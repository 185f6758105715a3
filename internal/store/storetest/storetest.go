// Package storetest opens throwaway in-memory databases for tests.
package storetest

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jason-czar/Sportstreams/internal/store"
)

// New returns a Store backed by a fresh in-memory SQLite database.
func New(t *testing.T) *store.Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	st, err := store.NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() { st.Close() })
	return st
}
