package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vlog/internal/handler"
	"vlog/internal/httputil"
	authmw "vlog/internal/transport/http/middleware"
)

// RouterConfig holds the dependencies needed to create routes
type RouterConfig struct {
	AuthHandler    *handler.AuthHandler
	PostHandler    *handler.PostHandler
	CommentHandler *handler.CommentHandler
	LikeHandler    *handler.LikeHandler
	AdminHandler   *handler.AdminHandler
	JWTSecret      string
}

// NewRouter creates and configures a new Chi router with all route groups
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)

	// Health check endpoint (useful for deployment/monitoring)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, 200, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", cfg.AuthHandler.Register)
			r.Post("/login", cfg.AuthHandler.Login)
			r.With(authmw.RequireAuth(cfg.JWTSecret)).Get("/verify", cfg.AuthHandler.Verify)
		})

		r.Route("/posts", func(r chi.Router) {
			// Public reads
			r.Get("/popular", cfg.PostHandler.Popular)
			r.Get("/{id}", cfg.PostHandler.GetByID)

			// Authenticated reads and writes
			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAuth(cfg.JWTSecret))
				r.Get("/all", cfg.PostHandler.GetAll)
				r.Get("/me", cfg.PostHandler.GetMine)
				r.Post("/", cfg.PostHandler.Create)
				r.Put("/{id}", cfg.PostHandler.Update)
				r.Delete("/{id}", cfg.PostHandler.Delete)
			})
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/post/{postID}", cfg.CommentHandler.ListByPost)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAuth(cfg.JWTSecret))
				r.Post("/", cfg.CommentHandler.Create)
				r.Delete("/{id}", cfg.CommentHandler.Delete)
				r.With(authmw.RequireAdmin).Get("/all", cfg.CommentHandler.ListAll)
			})
		})

		r.Route("/likes", func(r chi.Router) {
			r.Get("/{postID}/count", cfg.LikeHandler.Count)
			r.Get("/user/{userID}", cfg.LikeHandler.UserLikes)

			r.Group(func(r chi.Router) {
				r.Use(authmw.RequireAuth(cfg.JWTSecret))
				r.Post("/", cfg.LikeHandler.Like)
				r.Delete("/", cfg.LikeHandler.Unlike)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authmw.RequireAuth(cfg.JWTSecret))
			r.Use(authmw.RequireAdmin)
			r.Get("/users", cfg.AdminHandler.ListUsers)
			r.Get("/posts", cfg.AdminHandler.ListPosts)
		})
	})

	return r
}
