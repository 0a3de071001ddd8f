package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vlog/internal/httputil"
	"vlog/internal/model"
	"vlog/internal/service"
	"vlog/internal/transport/http/middleware"
)

type LikeHandler struct {
	likeService *service.LikeService
}

func NewLikeHandler(likeService *service.LikeService) *LikeHandler {
	return &LikeHandler{likeService: likeService}
}

// Like handles POST /api/likes
// Body: {"post_id": 1}. Liking the same post twice is a 409.
func (h *LikeHandler) Like(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.PostID == 0 {
		httputil.WriteBadRequest(w, "Post ID required")
		return
	}

	like, err := h.likeService.Like(r.Context(), principal.UserID, req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrAlreadyLiked):
			httputil.WriteConflict(w, "Post already liked")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Like handler: user=%d post=%d err=%v", principal.UserID, req.PostID, err)
			httputil.WriteInternalError(w, "Failed to like post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, like)
}

// Unlike handles DELETE /api/likes
// Body: {"post_id": 1}. Removing a like that does not exist is a 404.
func (h *LikeHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.LikeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}
	if req.PostID == 0 {
		httputil.WriteBadRequest(w, "Post ID required")
		return
	}

	err := h.likeService.Unlike(r.Context(), principal.UserID, req.PostID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrLikeNotFound):
			httputil.WriteNotFound(w, "Like not found")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Unlike handler: user=%d post=%d err=%v", principal.UserID, req.PostID, err)
			httputil.WriteInternalError(w, "Failed to unlike post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Like removed",
	})
}

// Count handles GET /api/likes/{postID}/count
func (h *LikeHandler) Count(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(chi.URLParam(r, "postID"))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	count, err := h.likeService.Count(r.Context(), postID)
	if err != nil {
		writeListError(w, "like count", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"post_id": postID,
		"count":   count,
	})
}

// UserLikes handles GET /api/likes/user/{userID}
// The ids of every post the user has liked, most recent first.
func (h *LikeHandler) UserLikes(w http.ResponseWriter, r *http.Request) {
	userID, err := parseID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid user ID")
		return
	}

	postIDs, err := h.likeService.LikedPostIDs(r.Context(), userID)
	if err != nil {
		writeListError(w, "likes", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":  userID,
		"post_ids": postIDs,
	})
}
