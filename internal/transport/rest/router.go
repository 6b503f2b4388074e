package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"gamedesk/internal/repository"
	"gamedesk/internal/service"
	"gamedesk/internal/transport/rest/handler"
	"gamedesk/internal/transport/rest/middleware"
	"gamedesk/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService    *service.AuthService
	SessionService *service.SessionService
	BillingService *service.BillingService
	DeviceRepo     repository.DeviceRepo
	WSHub          *ws.Hub
	WSHandler      *ws.Handler
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	sessionHandler := handler.NewSessionHandler(c.SessionService)
	billHandler := handler.NewBillHandler(c.BillingService)
	deviceHandler := handler.NewDeviceHandler(c.DeviceRepo)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/floor", c.WSHandler.StaffWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Staff routes (require staff auth)
	staffRoutes := v1.NewRoute().Subrouter()
	staffRoutes.Use(authMW.RequireStaff)

	staffRoutes.HandleFunc("/devices", deviceHandler.List).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/ratecard", deviceHandler.RateCard).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/floor", sessionHandler.Floor).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/sessions", sessionHandler.ListByToken).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/sessions/{id}/cost", sessionHandler.Cost).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/bills", billHandler.Generate).Methods("POST", "OPTIONS")
	staffRoutes.HandleFunc("/bills/unpaid", billHandler.ListUnpaid).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/bills/{id}", billHandler.Get).Methods("GET", "OPTIONS")
	staffRoutes.HandleFunc("/bills/{id}/settle", billHandler.Settle).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
