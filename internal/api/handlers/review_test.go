package handlers_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/handlers"
	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
	appErrors "github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/photos"
	"github.com/aaravmahajanofficial/storefront-demo/internal/services/mocks"
	"github.com/aaravmahajanofficial/storefront-demo/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var reviewConfig = config.Reviews{MaxPhotos: 5, MaxPhotoBytes: 1 << 20, MaxUploadBytes: 64 << 20}

func multipartRequest(t *testing.T, fields map[string]string, photos map[string][]byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, data := range photos {
		fw, err := mw.CreateFormFile("photos", name)
		require.NoError(t, err)
		_, err = fw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/products/4/reviews", &buf, map[string]string{"id": "4"})
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestCreateReview(t *testing.T) {
	t.Run("Multipart with aspects and photos", func(t *testing.T) {
		// Arrange
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, reviewConfig)

		expectedReq := &models.CreateReviewRequest{
			Rating:        4,
			Comment:       "Great sound",
			Author:        "Priya",
			AspectRatings: map[string]int{"battery": 5, "design": 3},
		}
		svc.On("Create", mock.Anything, testutils.SessionID, int64(4), expectedReq,
			mock.MatchedBy(func(files []photos.Upload) bool {
				return len(files) == 1 && files[0].Filename == "ear.png" && string(files[0].Data) == "\x89PNG\r\n\x1a\n"
			}),
		).Return(&models.Review{ID: 1, ProductID: 4, Rating: 4}, nil).Once()

		req := multipartRequest(t, map[string]string{
			"rating":         "4",
			"comment":        "Great sound",
			"author":         "Priya",
			"aspect_battery": "5",
			"aspect_design":  "3",
			"aspect_camera":  "",
		}, map[string][]byte{"ear.png": []byte("\x89PNG\r\n\x1a\n")})

		// Act
		rr := serve(h.CreateReview(), req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		var review models.Review
		decodeData(t, rr, &review)
		assert.Equal(t, int64(1), review.ID)
		svc.AssertExpectations(t)
	})

	t.Run("Multipart rating must be numeric", func(t *testing.T) {
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, reviewConfig)

		rr := serve(h.CreateReview(), multipartRequest(t, map[string]string{"rating": "four"}, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeEnvelope(t, rr).Error.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("JSON body without photos", func(t *testing.T) {
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, reviewConfig)

		svc.On("Create", mock.Anything, testutils.SessionID, int64(4),
			&models.CreateReviewRequest{Rating: 5, Comment: "Love it"},
			[]photos.Upload(nil),
		).Return(&models.Review{ID: 2, ProductID: 4, Rating: 5}, nil).Once()

		req := sessionRequest(http.MethodPost, "/api/v1/products/4/reviews", strings.NewReader(`{"rating":5,"comment":"Love it"}`), "4")
		rr := serve(h.CreateReview(), req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Author too long", func(t *testing.T) {
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, reviewConfig)

		body := `{"rating":5,"author":"` + strings.Repeat("a", 81) + `"}`
		rr := serve(h.CreateReview(), sessionRequest(http.MethodPost, "/api/v1/products/4/reviews", strings.NewReader(body), "4"))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, appErrors.ErrCodeValidation, decodeEnvelope(t, rr).Error.Code)
	})

	t.Run("Photos beyond the limit are dropped", func(t *testing.T) {
		// Arrange
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, reviewConfig)

		photo := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 1<<20-8)...)

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("rating", "5"))
		for i := range 8 {
			fw, err := mw.CreateFormFile("photos", fmt.Sprintf("%d.png", i))
			require.NoError(t, err)
			_, err = fw.Write(photo)
			require.NoError(t, err)
		}
		require.NoError(t, mw.WriteField("comment", "after the photos"))
		require.NoError(t, mw.Close())

		req := testutils.CreateTestRequestWithSession(http.MethodPost, "/api/v1/products/4/reviews", &buf, map[string]string{"id": "4"})
		req.Header.Set("Content-Type", mw.FormDataContentType())

		svc.On("Create", mock.Anything, testutils.SessionID, int64(4),
			&models.CreateReviewRequest{Rating: 5, Comment: "after the photos"},
			mock.MatchedBy(func(files []photos.Upload) bool {
				if len(files) != 5 {
					return false
				}
				for i, f := range files {
					if f.Filename != fmt.Sprintf("%d.png", i) || len(f.Data) != 1<<20 {
						return false
					}
				}
				return true
			}),
		).Return(&models.Review{ID: 7, ProductID: 4, Rating: 5}, nil).Once()

		// Act
		rr := serve(h.CreateReview(), req)

		// Assert
		assert.Equal(t, http.StatusCreated, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("Body over the upload ceiling", func(t *testing.T) {
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, config.Reviews{MaxPhotos: 5, MaxPhotoBytes: 1 << 20, MaxUploadBytes: 1 << 10})

		photo := append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0}, 4<<10)...)
		rr := serve(h.CreateReview(), multipartRequest(t, map[string]string{"rating": "5"}, map[string][]byte{"big.png": photo}))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Photos exceed the upload limit", decodeEnvelope(t, rr).Error.Message)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing rating is reported by the service", func(t *testing.T) {
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, reviewConfig)

		svc.On("Create", mock.Anything, testutils.SessionID, int64(4), mock.Anything, mock.Anything).
			Return(nil, appErrors.ValidationError("Please select a rating")).Once()

		rr := serve(h.CreateReview(), multipartRequest(t, map[string]string{"comment": "no stars"}, nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Please select a rating", decodeEnvelope(t, rr).Error.Message)
	})
}

func TestListReviews(t *testing.T) {
	svc := new(mocks.ReviewService)
	h := handlers.NewReviewHandler(svc, reviewConfig)

	list := &models.ReviewList{
		Reviews: []models.Review{{ID: 3, Rating: 5}},
		Summary: models.RatingSummary{Average: 4.5, Total: 2},
	}
	svc.On("List", mock.Anything, testutils.SessionID, int64(4),
		models.ReviewListOptions{Sort: models.ReviewSortRating, Rating: 5},
	).Return(list, nil).Once()

	rr := serve(h.ListReviews(), sessionRequest(http.MethodGet, "/api/v1/products/4/reviews?sort=rating&rating=5", nil, "4"))

	assert.Equal(t, http.StatusOK, rr.Code)
	var got models.ReviewList
	decodeData(t, rr, &got)
	assert.Len(t, got.Reviews, 1)
	assert.Equal(t, 2, got.Summary.Total)
	svc.AssertExpectations(t)
}

func TestReviewSummary(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, reviewConfig)

		svc.On("Summary", mock.Anything, testutils.SessionID, int64(4)).
			Return(&models.RatingSummary{Average: 4, Total: 3, Distribution: map[int]int{3: 1, 4: 1, 5: 1}}, nil).Once()

		rr := serve(h.ReviewSummary(), sessionRequest(http.MethodGet, "/api/v1/products/4/reviews/summary", nil, "4"))

		assert.Equal(t, http.StatusOK, rr.Code)
		var got models.RatingSummary
		decodeData(t, rr, &got)
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, 1, got.Distribution[5])
		svc.AssertExpectations(t)
	})

	t.Run("Unknown product", func(t *testing.T) {
		svc := new(mocks.ReviewService)
		h := handlers.NewReviewHandler(svc, reviewConfig)

		svc.On("Summary", mock.Anything, testutils.SessionID, int64(4)).
			Return(nil, appErrors.NotFoundError("Product not found")).Once()

		rr := serve(h.ReviewSummary(), sessionRequest(http.MethodGet, "/api/v1/products/4/reviews/summary", nil, "4"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
