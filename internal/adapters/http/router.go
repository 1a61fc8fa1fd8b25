package http

import (
	"log/slog"
	"net/http"
	"time"

	"loftly/internal/adapters/http/middleware"
	"loftly/internal/adapters/ws"
	"loftly/internal/config"
	"loftly/internal/domain"
	"loftly/internal/metrics"
)

type RouterDeps struct {
	Auth    *AuthHandler
	Account *AccountHandler
	User    *UserHandler
	Rental  *RentalHandler
	Message *MessageHandler
	Ws      *ws.Handler

	AuthService domain.AuthService
	Metrics     *metrics.Collector
	UploadDir   string
	Log         *slog.Logger
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.Recovery(deps.Log))
	globalMw.Use(middleware.Logging(deps.Log))
	globalMw.Use(middleware.Metrics(deps.Metrics))
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.Auth(deps.AuthService))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", deps.Metrics.Handler())

	// Uploaded pictures are public, matching the URLs handed out on
	// rental creation.
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))))

	// The ws handler does its own token check.
	mux.HandleFunc("GET /ws", deps.Ws.Serve)

	mux.HandleFunc("POST /api/auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", deps.Auth.Login)
	mux.Handle("POST /api/auth/logout", userStack.Then(http.HandlerFunc(deps.Auth.Logout)))
	mux.Handle("GET /api/auth/me", userStack.Then(http.HandlerFunc(deps.Auth.Me)))

	mux.Handle("GET /api/rentals", userStack.Then(http.HandlerFunc(deps.Rental.Index)))
	mux.Handle("GET /api/rentals/{id}", userStack.Then(http.HandlerFunc(deps.Rental.Show)))
	mux.Handle("POST /api/rentals", userStack.Then(http.HandlerFunc(deps.Rental.Store)))
	mux.Handle("PUT /api/rentals/{id}", userStack.Then(http.HandlerFunc(deps.Rental.Update)))

	mux.Handle("GET /api/messages", userStack.Then(http.HandlerFunc(deps.Message.Index)))
	mux.Handle("GET /api/messages/{id}", userStack.Then(http.HandlerFunc(deps.Message.Show)))
	mux.Handle("POST /api/messages", userStack.Then(http.HandlerFunc(deps.Message.Store)))
	mux.Handle("DELETE /api/messages/{id}", userStack.Then(http.HandlerFunc(deps.Message.Destroy)))

	mux.Handle("GET /api/users/{id}", userStack.Then(http.HandlerFunc(deps.User.Show)))

	mux.Handle("PUT /api/account/profile", userStack.Then(http.HandlerFunc(deps.Account.UpdateProfile)))
	mux.Handle("PUT /api/account/password", userStack.Then(http.HandlerFunc(deps.Account.ChangePassword)))

	return globalMw.Apply(mux)
}

func NewServer(handler http.Handler, addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
