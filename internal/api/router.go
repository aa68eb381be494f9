package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/bloghub/blog-system/internal/api/handler"
	"github.com/bloghub/blog-system/internal/api/middleware"
	"github.com/bloghub/blog-system/internal/core/ports"
	"github.com/bloghub/blog-system/internal/core/token"
)

// Deps carries the wired dependencies the router needs.
type Deps struct {
	Accounts ports.AccountService
	Posts    ports.PostService
	Tokens   *token.Service
	Users    ports.UserRepository
	Mongo    *mongo.Database
	Redis    *redis.Client
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth routes (no token required) ---
	authHandler := handler.NewAuthHandler(d.Accounts)
	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/signin", authHandler.Signin)

	// --- Post routes (token required) ---
	postHandler := handler.NewPostHandler(d.Posts)
	posts := e.Group("/posts", middleware.Auth(d.Tokens, d.Users))
	posts.POST("/publish", postHandler.Publish)
	posts.GET("", postHandler.List)
	posts.GET("/:id", postHandler.Get)
	posts.PUT("/:id", postHandler.Update)
	posts.DELETE("/:id", postHandler.Delete)
	posts.GET("/:id/activity", postHandler.Activity)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
