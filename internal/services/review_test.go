package service_test

import (
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/photos"
	service "github.com/aaravmahajanofficial/storefront-demo/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewCfg = config.Reviews{
	MaxPhotos:        5,
	MaxPhotoBytes:    1 << 16,
	EncodeWorkers:    2,
	DefaultAuthor:    "Anonymous User",
	MaxCommentLength: 50,
}

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newReviewService(t *testing.T) service.ReviewService {
	t.Helper()

	encoder := photos.NewEncoder(photos.Options{
		MaxPhotos: reviewCfg.MaxPhotos,
		MaxBytes:  reviewCfg.MaxPhotoBytes,
		Workers:   reviewCfg.EncodeWorkers,
	})

	return service.NewReviewService(seedCatalog(t), newManager(), encoder, reviewCfg)
}

func uploads(files map[string][]byte) []photos.Upload {
	var out []photos.Upload
	for name, data := range files {
		out = append(out, photos.Upload{Filename: name, Data: data})
	}

	return out
}

func TestReviewService_Create(t *testing.T) {
	ctx := t.Context()

	t.Run("minimal review gets defaults", func(t *testing.T) {
		svc := newReviewService(t)

		review, err := svc.Create(ctx, testSession, 1, &models.CreateReviewRequest{Rating: 4}, nil)

		require.NoError(t, err)
		assert.Positive(t, review.ID)
		assert.Equal(t, int64(1), review.ProductID)
		assert.Equal(t, "Anonymous User", review.Author)
		assert.Nil(t, review.Photos)
		assert.Nil(t, review.AspectRatings)
		assert.False(t, review.CreatedAt.IsZero())
	})

	t.Run("missing rating", func(t *testing.T) {
		_, err := newReviewService(t).Create(ctx, testSession, 1, &models.CreateReviewRequest{Comment: "ok"}, nil)

		appErr := assertAppError(t, err, appErrors.ErrCodeValidation)
		assert.Equal(t, "Please select a rating", appErr.Message)
	})

	t.Run("rating out of range", func(t *testing.T) {
		_, err := newReviewService(t).Create(ctx, testSession, 1, &models.CreateReviewRequest{Rating: 6}, nil)

		assertAppError(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := newReviewService(t).Create(ctx, testSession, 999, &models.CreateReviewRequest{Rating: 5}, nil)

		assertAppError(t, err, appErrors.ErrCodeNotFound)
	})

	t.Run("aspect ratings", func(t *testing.T) {
		svc := newReviewService(t)

		review, err := svc.Create(ctx, testSession, 1, &models.CreateReviewRequest{
			Rating:        5,
			AspectRatings: map[string]int{"camera": 5, "Battery": 3, "display": 0},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, map[models.Aspect]int{models.AspectCamera: 5, models.AspectBattery: 3}, review.AspectRatings)
	})

	t.Run("unknown aspect", func(t *testing.T) {
		_, err := newReviewService(t).Create(ctx, testSession, 1, &models.CreateReviewRequest{
			Rating:        5,
			AspectRatings: map[string]int{"speed": 4},
		}, nil)

		assertAppError(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("aspect out of range", func(t *testing.T) {
		_, err := newReviewService(t).Create(ctx, testSession, 1, &models.CreateReviewRequest{
			Rating:        5,
			AspectRatings: map[string]int{"design": 9},
		}, nil)

		assertAppError(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("markup is stripped", func(t *testing.T) {
		review, err := newReviewService(t).Create(ctx, testSession, 1, &models.CreateReviewRequest{
			Rating:  3,
			Comment: "<b>It's</b> fine<script>alert(1)</script>",
			Author:  "  <i>Priya</i> ",
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "It's fine", review.Comment)
		assert.Equal(t, "Priya", review.Author)
	})

	t.Run("comment too long", func(t *testing.T) {
		_, err := newReviewService(t).Create(ctx, testSession, 1, &models.CreateReviewRequest{
			Rating:  3,
			Comment: strings.Repeat("a", 51),
		}, nil)

		assertAppError(t, err, appErrors.ErrCodeValidation)
	})

	t.Run("photos are attached", func(t *testing.T) {
		review, err := newReviewService(t).Create(ctx, testSession, 1, &models.CreateReviewRequest{Rating: 5},
			uploads(map[string][]byte{"a.png": pngBytes, "b.png": pngBytes}))

		require.NoError(t, err)
		require.Len(t, review.Photos, 2)
		assert.True(t, strings.HasPrefix(review.Photos[0], "data:image/png;base64,"))
	})

	t.Run("non image photo rejects the review", func(t *testing.T) {
		svc := newReviewService(t)

		_, err := svc.Create(ctx, testSession, 1, &models.CreateReviewRequest{Rating: 5},
			uploads(map[string][]byte{"notes.txt": []byte("plain text")}))

		assertAppError(t, err, appErrors.ErrCodeValidation)
		list, err := svc.List(ctx, testSession, 1, models.ReviewListOptions{})
		require.NoError(t, err)
		assert.Empty(t, list.Reviews, "nothing is stored when photos fail")
	})

	t.Run("ids are unique and increasing", func(t *testing.T) {
		svc := newReviewService(t)

		first, err := svc.Create(ctx, testSession, 1, &models.CreateReviewRequest{Rating: 5}, nil)
		require.NoError(t, err)
		second, err := svc.Create(ctx, testSession, 1, &models.CreateReviewRequest{Rating: 4}, nil)
		require.NoError(t, err)

		assert.Greater(t, second.ID, first.ID)
	})
}

func TestReviewService_List(t *testing.T) {
	ctx := t.Context()
	svc := newReviewService(t)

	for _, rating := range []int{3, 5, 4, 5} {
		_, err := svc.Create(ctx, testSession, 2, &models.CreateReviewRequest{Rating: rating}, nil)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, testSession, 3, &models.CreateReviewRequest{Rating: 1}, nil)
	require.NoError(t, err)

	ratings := func(reviews []models.Review) []int {
		out := make([]int, 0, len(reviews))
		for _, r := range reviews {
			out = append(out, r.Rating)
		}
		return out
	}

	t.Run("recent first by default", func(t *testing.T) {
		list, err := svc.List(ctx, testSession, 2, models.ReviewListOptions{})

		require.NoError(t, err)
		assert.Equal(t, []int{5, 4, 5, 3}, ratings(list.Reviews))
		assert.Equal(t, 4, list.Summary.Total)
		assert.InDelta(t, 4.25, list.Summary.Average, 1e-9)
		assert.Equal(t, 2, list.Summary.Distribution[5])
	})

	t.Run("by rating", func(t *testing.T) {
		list, err := svc.List(ctx, testSession, 2, models.ReviewListOptions{Sort: models.ReviewSortRating})

		require.NoError(t, err)
		assert.Equal(t, []int{5, 5, 4, 3}, ratings(list.Reviews))
	})

	t.Run("star filter keeps the full summary", func(t *testing.T) {
		list, err := svc.List(ctx, testSession, 2, models.ReviewListOptions{Rating: 5})

		require.NoError(t, err)
		assert.Equal(t, []int{5, 5}, ratings(list.Reviews))
		assert.Equal(t, 4, list.Summary.Total)
	})

	t.Run("product without reviews", func(t *testing.T) {
		list, err := svc.List(ctx, testSession, 7, models.ReviewListOptions{})

		require.NoError(t, err)
		assert.Empty(t, list.Reviews)
		assert.Zero(t, list.Summary.Average)
	})
}

func TestReviewService_Summary(t *testing.T) {
	ctx := t.Context()
	svc := newReviewService(t)

	empty, err := svc.Summary(ctx, testSession, 2)
	require.NoError(t, err)
	assert.Zero(t, empty.Total)
	assert.Zero(t, empty.Average)

	for _, rating := range []int{2, 4, 4} {
		_, err := svc.Create(ctx, testSession, 2, &models.CreateReviewRequest{Rating: rating}, nil)
		require.NoError(t, err)
	}

	summary, err := svc.Summary(ctx, testSession, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Total)
	assert.InDelta(t, 10.0/3, summary.Average, 1e-9)
	assert.Equal(t, map[int]int{1: 0, 2: 1, 3: 0, 4: 2, 5: 0}, summary.Distribution)

	other, err := svc.Summary(ctx, "another-session", 2)
	require.NoError(t, err)
	assert.Zero(t, other.Total, "reviews are per session")

	_, err = svc.Summary(ctx, testSession, 9999)
	assertAppError(t, err, appErrors.ErrCodeNotFound)
}
