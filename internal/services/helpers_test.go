package service_test

import (
	"testing"
	"time"

	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	appErrors "github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSession = "2f0c9a8e-7a51-4a34-9c0e-1f2d3c4b5a69"

func seedCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Seed()
	require.NoError(t, err)

	return c
}

// smallCatalog has one in-stock product (id 1, stock 2) and one sold-out
// product (id 2).
func smallCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.New([]models.Product{
		{ID: 1, Name: "Phone", Price: 10000, Stock: 2, Category: "Electronics", Brand: "Acme"},
		{ID: 2, Name: "Sold Out Jacket", Price: 5000, Stock: 0, Category: "Fashion"},
	})
	require.NoError(t, err)

	return c
}

func newManager() *session.Manager {
	return session.NewManager(session.NewMemoryRepository(), time.Hour)
}

func assertAppError(t *testing.T, err error, code string) *appErrors.AppError {
	t.Helper()

	require.Error(t, err)
	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok, "expected an AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)

	return appErr
}
