package handlers

import (
	"log/slog"
	"net/http"

	"github.com/aaravmahajanofficial/storefront-demo/internal/api/middleware"
	"github.com/aaravmahajanofficial/storefront-demo/internal/errors"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils"
	"github.com/aaravmahajanofficial/storefront-demo/internal/utils/response"
)

// sessionID reads the id placed by the session middleware, answering 500
// when the route was mounted without it.
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.SessionIDFromContext(r.Context())
	if !ok {
		middleware.LoggerFromContext(r.Context()).Error("Request reached a session route without a session")
		response.Error(w, errors.InternalError("Session is not available"))
		return "", false
	}

	return id, true
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := utils.PathInt64(r, "id")
	if err != nil {
		middleware.LoggerFromContext(r.Context()).Warn("Invalid product id", slog.String("error", err.Error()))
		response.Error(w, errors.BadRequestError("Invalid product id").WithDetail(err.Error()))
		return 0, false
	}

	return id, true
}
