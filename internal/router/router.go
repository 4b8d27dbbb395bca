package router

import (
	"net/http"
	"os"
	"path/filepath"

	"cafe-menu/internal/config"
	"cafe-menu/internal/handlers"
	"cafe-menu/internal/middleware"
	"cafe-menu/internal/services"
	"cafe-menu/internal/store"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func SetupRouter(st *store.Store, cfg config.Config, logger zerolog.Logger) (*mux.Router, error) {
	userService := services.NewUserService(st, logger)
	authService := services.NewAuthService(cfg.JWTSecret, logger)
	menuService := services.NewMenuService(st, logger)
	settingsService := services.NewSettingsService(st, userService, logger)
	imageService, err := services.NewImageService(cfg.UploadDir, cfg.MaxUploadBytes, logger)
	if err != nil {
		return nil, err
	}

	authHandler := handlers.NewAuthHandler(userService, authService, logger)
	menuHandler := handlers.NewMenuHandler(menuService, logger)
	settingsHandler := handlers.NewSettingsHandler(settingsService, logger)
	imageHandler := handlers.NewImageHandler(imageService, logger)

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(20), 40)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(rateLimiter.Middleware())

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.NoCache())

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", authHandler.Login).Methods("POST")

	protectedAuth := auth.PathPrefix("").Subrouter()
	protectedAuth.Use(middleware.Authentication(authService, logger))
	protectedAuth.HandleFunc("/verify", authHandler.Verify).Methods("POST")
	protectedAuth.HandleFunc("/password", authHandler.UpdatePassword).Methods("PUT")

	api.HandleFunc("/menu", menuHandler.GetMenuItems).Methods("GET")
	api.HandleFunc("/menu/{id}", menuHandler.GetMenuItem).Methods("GET")

	menu := api.PathPrefix("/menu").Subrouter()
	menu.Use(middleware.Authentication(authService, logger))
	menu.Use(middleware.RequestValidation())
	menu.HandleFunc("", menuHandler.CreateMenuItem).Methods("POST")
	menu.HandleFunc("/{id}", menuHandler.UpdateMenuItem).Methods("PUT")
	menu.HandleFunc("/{id}", menuHandler.DeleteMenuItem).Methods("DELETE")

	api.HandleFunc("/cafe-settings", settingsHandler.GetSettings).Methods("GET")

	settings := api.PathPrefix("/cafe-settings").Subrouter()
	settings.Use(middleware.Authentication(authService, logger))
	settings.Use(middleware.RequestValidation())
	settings.HandleFunc("", settingsHandler.UpdateSettings).Methods("PUT")

	images := api.PathPrefix("").Subrouter()
	images.Use(middleware.Authentication(authService, logger))
	images.HandleFunc("/upload-image", imageHandler.Upload).Methods("POST")
	images.HandleFunc("/images", imageHandler.ListImages).Methods("GET")
	images.HandleFunc("/images/{filename}", imageHandler.DeleteImage).Methods("DELETE")

	// uploaded images are served without caching so replaced images show
	// up immediately in the admin panel
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
	r.PathPrefix("/uploads/").Handler(middleware.NoCache()(uploads))

	if cfg.StaticDir != "" {
		if _, err := os.Stat(cfg.StaticDir); err == nil {
			r.PathPrefix("/").Handler(spaHandler{dir: cfg.StaticDir})
		} else {
			logger.Warn().Str("dir", cfg.StaticDir).Msg("Static dir not found, skipping SPA serving")
		}
	}

	return r, nil
}

// spaHandler serves a built single-page app: real files as-is, every
// other path falls back to index.html for client-side routing.
type spaHandler struct {
	dir string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
		return
	}

	http.FileServer(http.Dir(h.dir)).ServeHTTP(w, r)
}
