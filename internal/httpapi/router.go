package httpapi

import (
	"net/http"

	"github.com/VitaminP8/storyline/internal/logging"
	"github.com/VitaminP8/storyline/internal/service"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Options struct {
	CORSOrigin     string
	MaxUploadBytes int64
	// UploadsDir - каталог, раздаваемый по /uploads/ (пусто - не раздавать)
	UploadsDir string
}

type Handler struct {
	svc  *service.Service
	opts Options
}

// NewRouter собирает все маршруты API. Мутирующие маршруты закрыты RequireAuth
func NewRouter(svc *service.Service, opts Options, logger zerolog.Logger) http.Handler {
	h := &Handler{svc: svc, opts: opts}
	protected := svc.Tokens.RequireAuth

	router := mux.NewRouter().UseEncodedPath()

	router.HandleFunc("/", h.handleHealth).Methods("GET")

	// Auth routes
	router.HandleFunc("/signup", h.handleSignup).Methods("POST")
	router.HandleFunc("/login", h.handleLogin).Methods("POST")

	// Article routes
	router.HandleFunc("/articles", h.handleListArticles).Methods("GET")
	router.Handle("/articles", protected(http.HandlerFunc(h.handleCreateArticle))).Methods("POST")
	// раньше /articles/{id}, иначе "tag" уйдет в id
	router.HandleFunc("/articles/tag/{tag}", h.handleArticlesByTag).Methods("GET")
	router.HandleFunc("/articles/{id}", h.handleGetArticle).Methods("GET")
	router.Handle("/articles/{id}", protected(http.HandlerFunc(h.handleUpdateArticle))).Methods("PUT")
	router.Handle("/articles/{id}", protected(http.HandlerFunc(h.handleDeleteArticle))).Methods("DELETE")
	router.HandleFunc("/tags", h.handleTags).Methods("GET")
	router.HandleFunc("/users/{username}/articles", h.handleArticlesByUser).Methods("GET")

	// Comment routes
	router.HandleFunc("/articles/{articleId}/comments", h.handleListComments).Methods("GET")
	router.Handle("/articles/{articleId}/comments", protected(http.HandlerFunc(h.handleCreateComment))).Methods("POST")
	router.Handle("/comments/{id}", protected(http.HandlerFunc(h.handleDeleteComment))).Methods("DELETE")

	if opts.UploadsDir != "" {
		router.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadsDir))))
	}

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})

	// CORS снаружи роутера: preflight OPTIONS не совпадает ни с одним маршрутом
	return logging.Middleware(logger)(withCORS(opts.CORSOrigin, router))
}

func withCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
