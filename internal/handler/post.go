package handler

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"vlog/internal/httputil"
	"vlog/internal/model"
	"vlog/internal/service"
	"vlog/internal/transport/http/middleware"
)

type PostHandler struct {
	postService  *service.PostService
	mediaService *service.MediaService
}

func NewPostHandler(postService *service.PostService, mediaService *service.MediaService) *PostHandler {
	return &PostHandler{
		postService:  postService,
		mediaService: mediaService,
	}
}

// postForm holds the decoded fields of a create/update request, either JSON
// or multipart with an optional image upload.
type postForm struct {
	Title    string
	Content  string
	Category string
	Image    *string
}

// decodePostForm accepts multipart/form-data (title, content, category fields
// plus an optional image file) or a plain JSON body without an image. A
// present image is uploaded immediately; only its opaque key travels on.
func (h *PostHandler) decodePostForm(w http.ResponseWriter, r *http.Request) (*postForm, bool) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "multipart/form-data" {
		var req struct {
			Title    string `json:"title"`
			Content  string `json:"content"`
			Category string `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.WriteBadRequest(w, "Invalid request body")
			return nil, false
		}
		return &postForm{Title: req.Title, Content: req.Content, Category: req.Category}, true
	}

	maxFormSize := int64(model.MaxImageSizeBytes) + 1024*1024 // allow form overhead
	r.Body = http.MaxBytesReader(w, r.Body, maxFormSize)
	if err := r.ParseMultipartForm(maxFormSize); err != nil {
		httputil.WriteBadRequest(w, "Invalid form data")
		return nil, false
	}

	form := &postForm{
		Title:    r.FormValue("title"),
		Content:  r.FormValue("content"),
		Category: r.FormValue("category"),
	}

	file, header, err := r.FormFile("image")
	switch {
	case err == nil:
		defer file.Close()
		upload, uploadErr := h.mediaService.UploadPostImage(r.Context(), file, header)
		if uploadErr != nil {
			switch {
			case errors.Is(uploadErr, model.ErrFileTooLarge):
				httputil.WriteBadRequest(w, "Image exceeds 10MB limit")
			case errors.Is(uploadErr, model.ErrInvalidImageType):
				httputil.WriteBadRequest(w, "Unsupported image type. Allowed: jpeg, png, gif, webp")
			default:
				log.Printf("[ERROR] Post image upload: err=%v", uploadErr)
				httputil.WriteInternalError(w, "Failed to upload image")
			}
			return nil, false
		}
		form.Image = &upload.Key
	case err == http.ErrMissingFile:
		// no image attached
	default:
		httputil.WriteBadRequest(w, "Invalid image upload")
		return nil, false
	}

	return form, true
}

// Create handles POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	form, ok := h.decodePostForm(w, r)
	if !ok {
		return
	}

	post, err := h.postService.Create(r.Context(), principal.UserID, model.CreatePostRequest{
		Title:    form.Title,
		Content:  form.Content,
		Category: form.Category,
		Image:    form.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired), errors.Is(err, model.ErrPostContentRequired):
			httputil.WriteBadRequest(w, "Title and content required")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Create post handler: user=%d err=%v", principal.UserID, err)
			httputil.WriteInternalError(w, "Failed to create post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, post)
}

// Update handles PUT /api/posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	form, ok := h.decodePostForm(w, r)
	if !ok {
		return
	}

	post, err := h.postService.Update(r.Context(), principal, postID, model.UpdatePostRequest{
		Title:    form.Title,
		Content:  form.Content,
		Category: form.Category,
		Image:    form.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, model.ErrTitleRequired), errors.Is(err, model.ErrPostContentRequired):
			httputil.WriteBadRequest(w, "Title and content required")
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "Not authorized")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Update post handler: user=%d post=%d err=%v", principal.UserID, postID, err)
			httputil.WriteInternalError(w, "Failed to update post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// GetAll handles GET /api/posts/all
// Every post with like and comment counts attached, newest first.
func (h *PostHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.List(r.Context())
	if err != nil {
		writeListError(w, "posts", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetMine handles GET /api/posts/me
func (h *PostHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	posts, err := h.postService.ListByAuthor(r.Context(), principal.UserID)
	if err != nil {
		writeListError(w, "posts", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, posts)
}

// Popular handles GET /api/posts/popular
// Posts ranked by like count descending, newest first among ties.
func (h *PostHandler) Popular(w http.ResponseWriter, r *http.Request) {
	posts, err := h.postService.Popular(r.Context())
	if err != nil {
		writeListError(w, "popular posts", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, posts)
}

// GetByID handles GET /api/posts/{id}
func (h *PostHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	postID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	post, err := h.postService.GetByID(r.Context(), postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Get post handler: post=%d err=%v", postID, err)
			httputil.WriteInternalError(w, "Failed to get post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}
// Removes the post and, in the same operation, every like and comment
// referencing it.
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.WriteUnauthorized(w, "Authentication required")
		return
	}

	postID, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteBadRequest(w, "Invalid post ID")
		return
	}

	err = h.postService.Delete(r.Context(), principal, postID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrPostNotFound):
			httputil.WriteNotFound(w, "Post not found")
		case errors.Is(err, model.ErrNotPostOwner):
			httputil.WriteForbidden(w, "Not authorized")
		case errors.Is(err, model.ErrStoreUnavailable):
			httputil.WriteUnavailable(w, "Store temporarily unavailable")
		default:
			log.Printf("[ERROR] Delete post handler: user=%d post=%d err=%v", principal.UserID, postID, err)
			httputil.WriteInternalError(w, "Failed to delete post")
		}
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Post deleted",
	})
}

// parseID parses a decimal path id; anything else is invalid input.
func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// writeListError maps list-endpoint failures, which have no per-entity cases.
func writeListError(w http.ResponseWriter, what string, err error) {
	if errors.Is(err, model.ErrStoreUnavailable) {
		httputil.WriteUnavailable(w, "Store temporarily unavailable")
		return
	}
	log.Printf("[ERROR] List %s: err=%v", what, err)
	httputil.WriteInternalError(w, "Failed to fetch "+what)
}
