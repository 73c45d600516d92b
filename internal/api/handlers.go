package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/blogserver-io/blogserver/internal/auth"
	"github.com/blogserver-io/blogserver/internal/database"
	"github.com/go-chi/chi/v5"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// CreatePostHandler creates a post owned by the authenticated user. The
// middleware already verified the token; the request is still rejected
// when no user ID made it into the context, and the author row is looked
// up again so a deleted account holding a live token cannot post.
func (api *Api) CreatePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeErrorCode(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "not authenticated")
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.Title == "" || req.Content == "" {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", "title and content are required")
		return
	}

	if _, err := api.store.GetUserByID(userID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			writeErrorCode(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "author not found")
			return
		}
		writeError(w, err)
		return
	}

	post, err := api.store.CreatePost(req.Title, req.Content, userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, post)
}

func (api *Api) GetAllPostsHandler(w http.ResponseWriter, r *http.Request) {
	posts, err := api.store.GetAllPosts()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetPostByIDHandler returns the post or a JSON null when no post has the
// requested id. Absence is not an error for this read.
func (api *Api) GetPostByIDHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid post id")
		return
	}

	post, err := api.store.GetPostByID(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, post)
}

func (api *Api) GetUserPostsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid user id")
		return
	}

	posts, err := api.store.GetPostsByAuthor(userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// DeletePostHandler deletes a post. Only the post's author may delete it.
func (api *Api) DeletePostHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeErrorCode(w, http.StatusUnauthorized, "NOT_AUTHENTICATED", "not authenticated")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil {
		writeErrorCode(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid post id")
		return
	}

	post, err := api.store.GetPostByID(id)
	if err != nil {
		writeError(w, err)
		return
	}
	if post == nil {
		writeError(w, errPostNotFound)
		return
	}
	if post.AuthorID != userID {
		writeError(w, errNotPostOwner)
		return
	}

	if err := api.store.DeletePost(id); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
