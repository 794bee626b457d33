package service

import (
	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
)

// sessionError passes classified errors through and reports anything else
// as a session storage failure.
func sessionError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := errors.IsAppError(err); ok {
		return err
	}

	return errors.StorageError("Failed to access session").WithError(err)
}

func lookupProduct(c *catalog.Catalog, id int64) (models.Product, error) {
	p, ok := c.Get(id)
	if !ok {
		return models.Product{}, errors.NotFoundError("Product not found")
	}

	return p, nil
}
