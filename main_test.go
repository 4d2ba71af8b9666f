package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/go-extras/go-kit/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/database"
	"storefront/internal/models"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setSQLiteEnv(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storefront.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("DATABASE_URL", path)
	t.Setenv("FRONTEND_URL", "http://localhost:5173")
	t.Setenv("NEXT_FRONT_URL", "")
	t.Setenv("AUTH_PROVIDER", "local")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("PORT", "")
	t.Setenv("PUBLIC_URL", "")
	return path
}

func TestOpenAPICommand(t *testing.T) {
	out, err := runCLI(t, "openapi")
	require.NoError(t, err)

	var document struct {
		OpenAPI string `json:"openapi"`
		Servers []struct {
			URL string `json:"url"`
		} `json:"servers"`
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &document))
	assert.Equal(t, "3.0.3", document.OpenAPI)
	require.Len(t, document.Servers, 1)
	assert.Equal(t, "http://localhost:3000/api/v1", document.Servers[0].URL)
	assert.Contains(t, document.Paths, "/product/all")
	assert.Contains(t, document.Paths, "/auth/login")
}

func TestSeedCommand(t *testing.T) {
	path := setSQLiteEnv(t)

	out, err := runCLI(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "inserted 100 products")

	out, err = runCLI(t, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "inserted 0 products")

	db := must.Must(database.Open("sqlite", path))
	t.Cleanup(func() {
		sqlDB := must.Must(db.DB())
		_ = sqlDB.Close()
	})
	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(100), count)
}

func TestSeedCommandInvalidConfig(t *testing.T) {
	setSQLiteEnv(t)
	t.Setenv("DATABASE_URL", "")

	_, err := runCLI(t, "seed")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}
