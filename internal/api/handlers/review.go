package handlers

import (
	stderrors "errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
	"github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/models"
	"github.com/aaravmahajanofficial/storefront-demo/internal/photos"
	service "github.com/aaravmahajanofficial/storefront-demo/internal/services"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

const (
	photosField   = "photos"
	aspectPrefix  = "aspect_"
	maxFieldBytes = 64 << 10
)

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
	maxPhotos     int
	maxPhotoBytes int64
	maxUpload     int64
}

func NewReviewHandler(reviewService service.ReviewService, cfg config.Reviews) *ReviewHandler {
	maxPhotos := cfg.MaxPhotos
	if maxPhotos < 1 || maxPhotos > models.MaxPhotosPerReview {
		maxPhotos = models.MaxPhotosPerReview
	}

	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator.New(),
		maxPhotos:     maxPhotos,
		maxPhotoBytes: cfg.MaxPhotoBytes,
		maxUpload:     cfg.MaxUploadBytes,
	}
}

// ListReviews answers GET /products/{id}/reviews?sort=recent|helpful|rating&rating=1..5
func (h *ReviewHandler) ListReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		id, ok := productID(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		opts := models.ReviewListOptions{Sort: models.ReviewSort(q.Get("sort"))}
		if rating, err := strconv.Atoi(q.Get("rating")); err == nil {
			opts.Rating = rating
		}

		list, err := h.reviewService.List(r.Context(), sid, id, opts)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to list reviews", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, list)
	}
}

// ReviewSummary answers GET /products/{id}/reviews/summary
func (h *ReviewHandler) ReviewSummary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		id, ok := productID(w, r)
		if !ok {
			return
		}

		summary, err := h.reviewService.Summary(r.Context(), sid, id)
		if err != nil {
			middleware.LoggerFromContext(r.Context()).Warn("Failed to summarize reviews", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusOK, summary)
	}
}

// CreateReview accepts multipart/form-data (rating, comment, author,
// aspect_<name>, photos) or a JSON body without photos.
func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		sid, ok := sessionID(w, r)
		if !ok {
			return
		}

		id, ok := productID(w, r)
		if !ok {
			return
		}

		var (
			req   models.CreateReviewRequest
			files []photos.Upload
			err   error
		)

		if isMultipart(r) {
			if h.maxUpload > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
			}
			files, err = h.readForm(r, &req)
		} else {
			err = utils.DecodeJSONBody(r, &req)
			if err != nil {
				err = errors.BadRequestError("Invalid request body").WithDetail(err.Error())
			}
		}
		if err != nil {
			logger.Warn("Invalid review input", slog.Any("error", err))
			response.Error(w, err)
			return
		}

		if err := h.validator.Struct(req); err != nil {
			var validationErrs validator.ValidationErrors
			if stderrors.As(err, &validationErrs) {
				response.ValidationError(w, validationErrs)
				return
			}
			response.Error(w, errors.InternalError("Failed to validate request").WithError(err))
			return
		}

		review, err := h.reviewService.Create(r.Context(), sid, id, &req, files)
		if err != nil {
			logger.Warn("Failed to create review", slog.Int64("productId", id), slog.Any("error", err))
			response.Error(w, err)
			return
		}

		response.Success(w, http.StatusCreated, review)
	}
}

func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// readForm streams the multipart body. Only the first maxPhotos photo
// parts are buffered; later ones are skipped unread.
func (h *ReviewHandler) readForm(r *http.Request, req *models.CreateReviewRequest) ([]photos.Upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, errors.BadRequestError("Invalid multipart form").WithDetail(err.Error())
	}

	var files []photos.Upload
	for {
		part, err := mr.NextPart()
		if stderrors.Is(err, io.EOF) {
			return files, nil
		}
		if err != nil {
			return nil, formError(err)
		}

		name := part.FormName()
		switch {
		case name == photosField:
			if len(files) >= h.maxPhotos {
				continue
			}

			upload, err := photos.Read(part.FileName(), part, h.maxPhotoBytes)
			if err != nil {
				return nil, formError(err)
			}
			files = append(files, upload)

		case part.FileName() != "":
			continue

		default:
			value, err := readField(name, part)
			if err != nil {
				return nil, err
			}
			if err := setField(req, name, value); err != nil {
				return nil, err
			}
		}
	}
}

func readField(name string, part *multipart.Part) (string, error) {
	data, err := io.ReadAll(io.LimitReader(part, maxFieldBytes+1))
	if err != nil {
		return "", formError(err)
	}
	if len(data) > maxFieldBytes {
		return "", errors.AddValidationError(name, "is too long")
	}

	return string(data), nil
}

func setField(req *models.CreateReviewRequest, name, value string) error {
	switch name {
	case "rating":
		raw := strings.TrimSpace(value)
		if raw == "" {
			return nil
		}
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return errors.AddValidationError("rating", "must be a whole number")
		}
		req.Rating = rating
	case "comment":
		req.Comment = value
	case "author":
		req.Author = value
	default:
		aspect, ok := strings.CutPrefix(name, aspectPrefix)
		raw := strings.TrimSpace(value)
		if !ok || raw == "" {
			return nil
		}

		score, err := strconv.Atoi(raw)
		if err != nil {
			return errors.AddValidationError(name, "must be a whole number")
		}
		if req.AspectRatings == nil {
			req.AspectRatings = make(map[string]int)
		}
		req.AspectRatings[aspect] = score
	}

	return nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.ValidationError("Photos exceed the upload limit").WithError(err)
	}

	return errors.BadRequestError("Invalid multipart form").WithDetail(err.Error())
}
