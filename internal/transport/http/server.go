package http

import (
	"context"
	"fmt"
	"log"
	stdhttp "net/http"

	"vlog/internal/config"
	"vlog/internal/database"
	"vlog/internal/handler"
	"vlog/internal/repository"
	"vlog/internal/service"
)

func Run() error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Connect to Database and apply schema
	db, err := database.Connect(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// 3. Wire repositories and services
	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	userService := service.NewUserService(userRepo)
	authService := service.NewAuthService(cfg)
	postService := service.NewPostService(postRepo, likeRepo, commentRepo, userRepo)
	commentService := service.NewCommentService(commentRepo, postRepo, userRepo)
	likeService := service.NewLikeService(likeRepo, postRepo, userRepo)

	mediaService, err := service.NewMediaService(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to init media service: %w", err)
	}

	// 4. Seed the bootstrap admin account
	if err := userService.EnsureAdmin(context.Background(), cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	// 5. Handlers and routes
	router := NewRouter(RouterConfig{
		AuthHandler:    handler.NewAuthHandler(userService, authService),
		PostHandler:    handler.NewPostHandler(postService, mediaService),
		CommentHandler: handler.NewCommentHandler(commentService),
		LikeHandler:    handler.NewLikeHandler(likeService),
		AdminHandler:   handler.NewAdminHandler(userService, postService),
		JWTSecret:      cfg.JWTSecret,
	})

	addr := ":" + cfg.ServerPort
	log.Printf("Starting server on %s", addr)
	return stdhttp.ListenAndServe(addr, router)
}
