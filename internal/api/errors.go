package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/blogserver-io/blogserver/internal/auth"
)

// errorResponse is the structured error body every failed operation
// returns: a stable machine-readable code plus a human message.
type errorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Errors the post handlers raise themselves; everything else comes out of
// the auth package.
var (
	errPostNotFound = errors.New("post not found")
	errNotPostOwner = errors.New("you are not the author of this post")
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Error: message})
}

// writeError translates a domain error into its HTTP status and stable
// code. Unrecognized errors are reported as a generic internal failure so
// store or hashing internals never leak to callers.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrEmailTaken):
		writeErrorCode(w, http.StatusConflict, "EMAIL_EXISTS", err.Error())
	case errors.Is(err, auth.ErrInvalidEmail), errors.Is(err, auth.ErrWeakPassword):
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
	case errors.Is(err, auth.ErrUserNotFound):
		writeErrorCode(w, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
	case errors.Is(err, auth.ErrInvalidPassword):
		writeErrorCode(w, http.StatusUnauthorized, "INVALID_PASSWORD", err.Error())
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrExpiredToken):
		writeErrorCode(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token")
	case errors.Is(err, auth.ErrInvalidRefreshToken):
		writeErrorCode(w, http.StatusConflict, "INVALID_REFRESH_TOKEN", err.Error())
	case errors.Is(err, errPostNotFound):
		writeErrorCode(w, http.StatusNotFound, "POST_NOT_FOUND", err.Error())
	case errors.Is(err, errNotPostOwner):
		writeErrorCode(w, http.StatusForbidden, "FORBIDDEN", err.Error())
	default:
		log.Printf("internal error: %v", err)
		writeErrorCode(w, http.StatusInternalServerError, "INTERNAL", "internal server error")
	}
}
