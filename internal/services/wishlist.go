package service

import (
	"context"

	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/session"
)

type WishlistService interface {
	List(ctx context.Context, sessionID string) (*models.Wishlist, error)
	Add(ctx context.Context, sessionID string, productID int64) (*models.Wishlist, error)
	Remove(ctx context.Context, sessionID string, productID int64) (*models.Wishlist, error)
	Contains(ctx context.Context, sessionID string, productID int64) (bool, error)
	MoveToCart(ctx context.Context, sessionID string, productID int64) (*models.Cart, error)
}

type wishlistService struct {
	catalog  *catalog.Catalog
	sessions *session.Manager
}

func NewWishlistService(c *catalog.Catalog, sessions *session.Manager) WishlistService {
	return &wishlistService{catalog: c, sessions: sessions}
}

func wishlistView(st *session.Store) *models.Wishlist {
	items := st.Wishlist()
	if items == nil {
		items = []models.Product{}
	}

	return &models.Wishlist{Items: items, Count: len(items)}
}

func (s *wishlistService) List(ctx context.Context, sessionID string) (*models.Wishlist, error) {
	var out *models.Wishlist

	err := s.sessions.View(ctx, sessionID, func(st *session.Store) error {
		out = wishlistView(st)
		return nil
	})

	return out, sessionError(err)
}

func (s *wishlistService) Add(ctx context.Context, sessionID string, productID int64) (*models.Wishlist, error) {
	p, err := lookupProduct(s.catalog, productID)
	if err != nil {
		return nil, err
	}

	var out *models.Wishlist
	err = s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		st.AddToWishlist(p)
		out = wishlistView(st)
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	metrics.RecordWishlistOperation("add")
	return out, nil
}

func (s *wishlistService) Remove(ctx context.Context, sessionID string, productID int64) (*models.Wishlist, error) {
	var out *models.Wishlist

	err := s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		st.RemoveFromWishlist(productID)
		out = wishlistView(st)
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	metrics.RecordWishlistOperation("remove")
	return out, nil
}

func (s *wishlistService) Contains(ctx context.Context, sessionID string, productID int64) (bool, error) {
	var found bool

	err := s.sessions.View(ctx, sessionID, func(st *session.Store) error {
		found = st.IsInWishlist(productID)
		return nil
	})

	return found, sessionError(err)
}

// MoveToCart adds the wishlisted product to the cart and drops it from the
// wishlist in one session update.
func (s *wishlistService) MoveToCart(ctx context.Context, sessionID string, productID int64) (*models.Cart, error) {
	p, err := lookupProduct(s.catalog, productID)
	if err != nil {
		return nil, err
	}

	var cart models.Cart
	err = s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		if !st.IsInWishlist(productID) {
			return errors.NotFoundError("Product is not in your wishlist")
		}
		if !p.InStock() {
			return errors.OutOfStockError("Product is out of stock")
		}

		st.AddToCart(p)
		st.RemoveFromWishlist(productID)
		cart = st.Cart()
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	metrics.RecordWishlistOperation("move_to_cart")
	return &cart, nil
}
