package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-catalog/internal/config"
)

func TestNewWithoutRedisServesUntrackedQuizzes(t *testing.T) {
	cfg := &config.App{
		Name:                    "trivia-catalog-test",
		Env:                     "test",
		LogLevel:                "disabled",
		HTTPAddr:                "127.0.0.1:0",
		GracefulShutdownTimeout: time.Second,
		Store:                   config.Store{Driver: config.DriverSQLite},
		SQLite:                  config.SQLite{Path: filepath.Join(t.TempDir(), "trivia.db")},
		Catalog:                 config.Catalog{PageSize: 10},
		Quiz:                    config.Quiz{SessionTTL: time.Hour},
		CORS:                    config.CORS{AllowedOrigins: []string{"*"}},
	}

	instance, err := New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(instance.close)
	assert.Nil(t, instance.redis)

	_, err = instance.store.Insert(context.Background(), questionFixture())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	instance.http.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/quizzes",
		strings.NewReader(`{"previous_questions":[],"quiz_category":{"id":0}}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body["question"])
	_, hasSession := body["session_id"]
	assert.False(t, hasSession)
}
