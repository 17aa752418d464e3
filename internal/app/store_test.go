package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-catalog/internal/catalog"
	"github.com/gokatarajesh/trivia-catalog/internal/config"
)

func TestOpenStoreSQLite(t *testing.T) {
	cfg := &config.App{
		Store:  config.Store{Driver: config.DriverSQLite},
		SQLite: config.SQLite{Path: filepath.Join(t.TempDir(), "trivia.db")},
	}

	store, err := OpenStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Ping(context.Background()))
	cats, err := store.ListCategories(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, cats)
}

func TestOpenStoreRejectsUnknownDriver(t *testing.T) {
	_, err := OpenStore(context.Background(), &config.App{Store: config.Store{Driver: "mongo"}}, zerolog.Nop())
	assert.ErrorContains(t, err, "unknown store driver")
}

func questionFixture() catalog.Question {
	return catalog.Question{Text: "Largest planet?", Answer: "Jupiter", CategoryID: 1, Difficulty: 1}
}
