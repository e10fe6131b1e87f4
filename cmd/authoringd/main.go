package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	api "github.com/lumilearn/lumilearn-authoring/internal/api/http"
	"github.com/lumilearn/lumilearn-authoring/internal/assets"
	authmw "github.com/lumilearn/lumilearn-authoring/internal/auth/middleware"
	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
	"github.com/lumilearn/lumilearn-authoring/internal/authoring/templates"
	"github.com/lumilearn/lumilearn-authoring/internal/config"
	"github.com/lumilearn/lumilearn-authoring/internal/db"
	"github.com/lumilearn/lumilearn-authoring/internal/rbac"
	"github.com/lumilearn/lumilearn-authoring/internal/storage"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := storage.NewSQLStore(dbh)

	// --- Item templates (optional) ---
	var seed authoring.SeedFunc
	if cfg.TemplateDir != "" {
		lib, err := templates.Load(cfg.TemplateDir)
		if err != nil {
			log.Fatalf("templates: %v", err)
		}
		log.Printf("loaded %d item templates from %s", lib.Len(), cfg.TemplateDir)
		seed = lib.Seed
	}

	reg := api.NewRegistry(store, seed, cfg.SaveStatusRevert)
	authSvc := authmw.NewAuthService(cfg.AuthHMACSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", authmw.LoginHandler(authSvc, dbh, cfg.AdminUser, cfg.AdminPassHash))

	bs, err := assets.NewFSStore(cfg.AssetBasePath)
	if err != nil {
		log.Fatalf("asset store: %v", err)
	}

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))

		pr.With(rbac.Require("assets:write")).Route("/assets", func(ar chi.Router) {
			api.MountAssets(ar, bs)
		})

		pr.With(rbac.Require("session:create")).
			Post("/sessions", api.OpenSessionHandler(reg))
		pr.With(rbac.RequireAny("session:view-own", "session:view-all")).
			Get("/sessions", api.ListSessionsHandler(store))
		pr.With(rbac.RequireAny("session:view-own", "session:view-all")).
			Get("/sessions/{sessionID}", api.GetSessionHandler(reg))
		pr.With(rbac.Require("session:edit")).
			Delete("/sessions/{sessionID}", api.DeleteSessionHandler(reg, store))

		pr.With(rbac.Require("session:edit")).
			Post("/sessions/{sessionID}/items", api.CreateItemHandler(reg))
		pr.With(rbac.Require("session:edit")).
			Put("/sessions/{sessionID}/items/{itemID}", api.UpdateItemHandler(reg))
		pr.With(rbac.Require("session:edit")).
			Delete("/sessions/{sessionID}/items/{itemID}", api.DeleteItemHandler(reg))
		pr.With(rbac.Require("session:edit")).
			Post("/sessions/{sessionID}/items/{itemID}/duplicate", api.DuplicateItemHandler(reg))
		pr.With(rbac.Require("session:edit")).
			Post("/sessions/{sessionID}/reorder", api.ReorderHandler(reg))

		pr.With(rbac.RequireAny("session:view-own", "session:view-all")).
			Get("/sessions/{sessionID}/preview", api.PreviewHandler(reg))
		pr.With(rbac.Require("session:save")).
			Post("/sessions/{sessionID}/save", api.SaveSessionHandler(reg))
		pr.With(rbac.RequireAny("session:view-own", "session:view-all")).
			Get("/sessions/{sessionID}/save/status", api.SaveStatusHandler(reg))

		pr.With(rbac.Require("items:import")).
			Post("/sessions/{sessionID}/import", api.ImportItemsHandler(reg))
		pr.With(rbac.Require("items:export")).
			Get("/sessions/{sessionID}/export.xlsx", api.ExportXLSXHandler(reg))

		pr.With(rbac.Require("user:change_password")).
			Post("/users/change-password", api.ChangePasswordHandler(dbh))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
