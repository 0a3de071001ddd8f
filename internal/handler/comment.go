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

type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// Create handles POST /api/comments
// Body: {"content": "...", "post_id": 1, "parent": 2} — parent optional.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	var req model.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteBadRequest(w, "Invalid request body")
		return
	}

	comment, err := h.commentService.Create(r.Context(), principal.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrContentRequired):
			httputil.WriteBadRequest(w, "Comment content required")
		case errors.Is(err, model.ErrContentTooLong):
			httputil.WriteBadRequest(w, "Comment exceeds 500 characters")
		case errors.Is(err, model.ErrPostIDRequired):
			httputil.WriteBadRequest(w, "Post ID required")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrParentCommentNotFound):
			httputil.WriteNotFound(w, "Parent comment not found")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Create comment handler: user=%d err=%v", principal.UserID, err)
			httputil.WriteInternalError(w, "Failed to create comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, comment)
}

// ListByPost handles GET /api/comments/post/{postID}
// Returns the post's comments as a nested reply forest.
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(chi.URLParam(r, "postID"))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	thread, err := h.commentService.GetThread(r.Context(), postID)
	if err != nil {
		writeListError(w, "comments", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, thread)
}

// Delete handles DELETE /api/comments/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	commentID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid comment ID")
		return
	}

	err = h.commentService.Delete(r.Context(), principal, commentID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrCommentNotFound):
			httputil.WriteNotFound(w, "Comment not found")
		case errors.Is(err, model.ErrNotCommentOwner):
			httputil.WriteForbidden(w, "Not authorized")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Delete comment handler: user=%d comment=%d err=%v", principal.UserID, commentID, err)
			httputil.WriteInternalError(w, "Failed to delete comment")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Comment deleted",
	})
}

// ListAll handles GET /api/comments/all — a flat moderation view across every
// post, newest first. Admin only; the router enforces that.
func (h *CommentHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.GetAll(r.Context())
	if err != nil {
		writeListError(w, "comments", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, comments)
}
