package handler

import (
	"net/http"

	"vlog/internal/httputil"
	"vlog/internal/model"
	"vlog/internal/service"
)

// AdminHandler serves the moderation dashboard endpoints. The router mounts
// everything here behind the admin middleware.
type AdminHandler struct {
	userService *service.UserService
	postService *service.PostService
}

func NewAdminHandler(userService *service.UserService, postService *service.PostService) *AdminHandler {
	return &AdminHandler{
		userService: userService,
		postService: postService,
	}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.GetAll(r.Context())
	if err != nil {
		writeListError(w, "users", err)
		return
	}

	// Strip password hashes; the summary carries id, username, and role.
	summaries := make([]model.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, *users[i].Summary())
	}

	httputil.WriteJSON(w, http.StatusOK, summaries)
}

// ListPosts handles GET /api/admin/posts
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeListError(w, "posts", err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, posts)
}
