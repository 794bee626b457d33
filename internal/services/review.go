package service

import (
	"cmp"
	"context"
	stderrors "errors"
	"fmt"
	"html"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/catalog"
	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
	"github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/metrics"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/photos"
	"github.com/aaravmahajanofficial/storefront-demo/internal/session"
	"github.com/microcosm-cc/bluemonday"
)

type ReviewService interface {
	Create(ctx context.Context, sessionID string, productID int64, req *models.CreateReviewRequest, files []photos.Upload) (*models.Review, error)
	List(ctx context.Context, sessionID string, productID int64, opts models.ReviewListOptions) (*models.ReviewList, error)
	Summary(ctx context.Context, sessionID string, productID int64) (*models.RatingSummary, error)
}

type reviewService struct {
	catalog  *catalog.Catalog
	sessions *session.Manager
	encoder  *photos.Encoder
	policy   *bluemonday.Policy
	cfg      config.Reviews
	ids      *idClock
	now      func() time.Time
}

func NewReviewService(c *catalog.Catalog, sessions *session.Manager, encoder *photos.Encoder, cfg config.Reviews) ReviewService {
	return &reviewService{
		catalog:  c,
		sessions: sessions,
		encoder:  encoder,
		policy:   bluemonday.StrictPolicy(),
		cfg:      cfg,
		ids:      &idClock{now: time.Now},
		now:      time.Now,
	}
}

func (s *reviewService) Create(ctx context.Context, sessionID string, productID int64, req *models.CreateReviewRequest, files []photos.Upload) (*models.Review, error) {
	logger := middleware.LoggerFromContext(ctx)

	if _, err := lookupProduct(s.catalog, productID); err != nil {
		return nil, err
	}

	if req.Rating == 0 {
		return nil, errors.ValidationError("Please select a rating")
	}
	if req.Rating < models.MinRating || req.Rating > models.MaxRating {
		return nil, errors.AddValidationError("rating", "must be between 1 and 5")
	}

	aspects, err := aspectRatings(req.AspectRatings)
	if err != nil {
		return nil, err
	}

	comment := s.plainText(req.Comment)
	if s.cfg.MaxCommentLength > 0 && utf8.RuneCountInString(comment) > s.cfg.MaxCommentLength {
		return nil, errors.AddValidationError("comment", fmt.Sprintf("must be at most %d characters", s.cfg.MaxCommentLength))
	}

	author := s.plainText(req.Author)
	if author == "" {
		author = s.cfg.DefaultAuthor
	}

	encoded, err := s.encoder.EncodeAll(ctx, files)
	if err != nil {
		logger.Warn("Review photos rejected", slog.String("error", err.Error()))
		return nil, photoError(err)
	}

	review := models.Review{
		ProductID:     productID,
		Rating:        req.Rating,
		Comment:       comment,
		Author:        author,
		CreatedAt:     s.now().UTC(),
		Photos:        encoded,
		AspectRatings: aspects,
	}
	if len(review.Photos) == 0 {
		review.Photos = nil
	}

	err = s.sessions.Update(ctx, sessionID, func(st *session.Store) error {
		review.ID = max(s.ids.next(), st.LastReviewID()+1)
		st.AddReview(review)
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	metrics.RecordReview(len(review.Photos))
	logger.Info("Review submitted",
		slog.Int64("product_id", productID),
		slog.Int64("review_id", review.ID),
		slog.Int("photos", len(review.Photos)),
	)

	return &review, nil
}

// plainText strips markup and returns unescaped text.
func (s *reviewService) plainText(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(in)))
}

func aspectRatings(in map[string]int) (map[models.Aspect]int, error) {
	var out map[models.Aspect]int

	for key, value := range in {
		aspect := models.Aspect(strings.ToLower(strings.TrimSpace(key)))
		if !aspect.Valid() {
			return nil, errors.AddValidationError("aspect_ratings", fmt.Sprintf("unknown aspect %q", key))
		}
		// 0 means the aspect was left unrated.
		if value == 0 {
			continue
		}
		if value < models.MinRating || value > models.MaxRating {
			return nil, errors.AddValidationError("aspect_ratings", fmt.Sprintf("%s must be between 1 and 5", aspect))
		}

		if out == nil {
			out = make(map[models.Aspect]int, len(models.Aspects))
		}
		out[aspect] = value
	}

	return out, nil
}

func photoError(err error) error {
	switch {
	case stderrors.Is(err, photos.ErrNotImage):
		return errors.ValidationError("Only image files can be attached").WithDetail(err.Error()).WithError(err)
	case stderrors.Is(err, photos.ErrTooLarge):
		return errors.ValidationError("Photo is too large").WithDetail(err.Error()).WithError(err)
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return errors.BadRequestError("Photo upload was interrupted").WithError(err)
	default:
		return errors.InternalError("Failed to process photos").WithError(err)
	}
}

func (s *reviewService) List(ctx context.Context, sessionID string, productID int64, opts models.ReviewListOptions) (*models.ReviewList, error) {
	if _, err := lookupProduct(s.catalog, productID); err != nil {
		return nil, err
	}

	var out models.ReviewList
	err := s.sessions.View(ctx, sessionID, func(st *session.Store) error {
		out.Reviews = st.ProductReviews(productID)
		out.Summary = ratingSummary(st, productID)
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	if opts.Rating >= models.MinRating && opts.Rating <= models.MaxRating {
		out.Reviews = slices.DeleteFunc(out.Reviews, func(r models.Review) bool { return r.Rating != opts.Rating })
	}

	sortReviews(out.Reviews, opts.Sort)

	return &out, nil
}

// Summary is the product's average, review count and per-star counts.
func (s *reviewService) Summary(ctx context.Context, sessionID string, productID int64) (*models.RatingSummary, error) {
	if _, err := lookupProduct(s.catalog, productID); err != nil {
		return nil, err
	}

	var out models.RatingSummary
	err := s.sessions.View(ctx, sessionID, func(st *session.Store) error {
		out = ratingSummary(st, productID)
		return nil
	})
	if err != nil {
		return nil, sessionError(err)
	}

	return &out, nil
}

func ratingSummary(st *session.Store, productID int64) models.RatingSummary {
	summary := st.ProductRating(productID)
	summary.Distribution = st.RatingDistribution(productID)

	return summary
}

func sortReviews(reviews []models.Review, key models.ReviewSort) {
	newestFirst := func(a, b models.Review) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	}

	switch key {
	case models.ReviewSortHelpful:
		slices.SortStableFunc(reviews, func(a, b models.Review) int {
			if c := cmp.Compare(b.HelpfulCount, a.HelpfulCount); c != 0 {
				return c
			}
			return newestFirst(a, b)
		})
	case models.ReviewSortRating:
		slices.SortStableFunc(reviews, func(a, b models.Review) int {
			if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
				return c
			}
			return newestFirst(a, b)
		})
	default:
		slices.SortStableFunc(reviews, newestFirst)
	}
}

// idClock hands out millisecond timestamps that strictly increase even when
// two reviews land in the same millisecond.
type idClock struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func (c *idClock) next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id

	return id
}
