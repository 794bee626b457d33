package service

import (
	"context"
	"log/slog"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-demo/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/session"
)

type CatalogService interface {
	ListProducts(ctx context.Context, spec models.FilterSpec) (*models.PaginatedResponse, error)
	GetProduct(ctx context.Context, sessionID string, id int64) (*models.ProductDetail, error)
	Facets(ctx context.Context) (*models.Facets, error)
}

type catalogService struct {
	catalog  *catalog.Catalog
	sessions *session.Manager
	pageSize int
	maxPrice int64
}

func NewCatalogService(c *catalog.Catalog, sessions *session.Manager, pageSize int, maxPrice int64) CatalogService {
	return &catalogService{
		catalog:  c,
		sessions: sessions,
		pageSize: pageSize,
		maxPrice: maxPrice,
	}
}

func (s *catalogService) ListProducts(ctx context.Context, spec models.FilterSpec) (*models.PaginatedResponse, error) {
	if spec.Page < 1 {
		spec.Page = 1
	}
	if !spec.Sort.Valid() {
		spec.Sort = models.SortPopularity
	}

	result := catalog.Query(s.catalog.Products(), spec, s.pageSize)
	metrics.RecordCatalogQuery(result.TotalMatching)

	middleware.LoggerFromContext(ctx).Debug("Catalog query",
		slog.Int("matching", result.TotalMatching),
		slog.Int("page", result.Page),
		slog.String("sort", string(spec.Sort)),
	)

	return &models.PaginatedResponse{
		Data:           result.Items,
		Total:          result.TotalMatching,
		Page:           result.Page,
		PageSize:       result.PageSize,
		TotalPages:     result.TotalPages,
		FiltersApplied: spec.FiltersApplied(s.maxPrice),
	}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, sessionID string, id int64) (*models.ProductDetail, error) {
	p, err := lookupProduct(s.catalog, id)
	if err != nil {
		return nil, err
	}

	detail := &models.ProductDetail{
		Product:       p,
		OriginalPrice: p.OriginalPrice(),
	}

	err = s.sessions.View(ctx, sessionID, func(st *session.Store) error {
		detail.Reviews = st.ProductReviews(id)
		detail.Rating = ratingSummary(st, id)
		detail.InWishlist = st.IsInWishlist(id)
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	return detail, nil
}

func (s *catalogService) Facets(ctx context.Context) (*models.Facets, error) {
	minPrice, maxPrice := s.catalog.PriceBounds()

	return &models.Facets{
		Categories:    s.catalog.Categories(),
		Brands:        s.catalog.Brands(),
		RatingTiers:   catalog.RatingTiers,
		DiscountTiers: catalog.DiscountTiers,
		MinPrice:      minPrice,
		MaxPrice:      maxPrice,
	}, nil
}
