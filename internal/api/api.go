package api

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/blogserver-io/blogserver/internal/auth"
	"github.com/blogserver-io/blogserver/internal/config"
	"github.com/blogserver-io/blogserver/internal/database"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Api struct {
	Config config.Config
	Router *chi.Mux

	store  *database.Store
	tokens *auth.TokenManager
	auth   *auth.Service
}

func NewApi(cfg config.Config, store *database.Store) (*Api, error) {
	if cfg.APIPort == 0 {
		return nil, errors.New("Must have at least a port to start API")
	}

	tokens := auth.NewTokenManager(
		cfg.Auth.AccessTokenSecret,
		cfg.Auth.RefreshTokenSecret,
		time.Duration(cfg.Auth.AccessTokenTTLMin)*time.Minute,
		time.Duration(cfg.Auth.RefreshTokenTTLHrs)*time.Hour,
	)

	api := &Api{
		Config: cfg,
		Router: chi.NewRouter(),
		store:  store,
		tokens: tokens,
		auth:   auth.NewService(store, tokens),
	}

	api.setupRoutes()
	return api, nil
}

// Tokens exposes the token manager, mainly so tests can mint tokens
// against the same secrets the router verifies with.
func (api *Api) Tokens() *auth.TokenManager {
	return api.tokens
}

func (api *Api) setupRoutes() {
	r := api.Router

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	r.Get("/", api.StartHandler)
	r.Get("/heartbeat", api.Heartbeat)

	// Identity operations
	r.Post("/auth/register", api.RegisterHandler)
	r.Post("/auth/login", api.LoginHandler)
	r.Post("/auth/refresh", api.RefreshTokenHandler)

	// Public reads
	r.Get("/posts", api.GetAllPostsHandler)
	r.Get("/posts/{postID}", api.GetPostByIDHandler)
	r.Get("/users/{userID}/posts", api.GetUserPostsHandler)

	// Mutations require a verified access token
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(api.tokens))
		r.Post("/posts", api.CreatePostHandler)
		r.Delete("/posts/{postID}", api.DeletePostHandler)
	})
}

func (api *Api) Serve() {
	addr := fmt.Sprintf("0.0.0.0:%d", api.Config.APIPort)
	log.Printf("Starting API server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, api.Router))
}

func (api *Api) StartHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Server is live"))
}

func (api *Api) Heartbeat(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
