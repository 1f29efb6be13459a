package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/xelth-com/eckshipgo/internal/apperror"
	"github.com/xelth-com/eckshipgo/internal/buildinfo"
	"github.com/xelth-com/eckshipgo/internal/delivery"
	"github.com/xelth-com/eckshipgo/internal/logger"
	"github.com/xelth-com/eckshipgo/internal/middleware"
	"github.com/xelth-com/eckshipgo/internal/models"
	"github.com/xelth-com/eckshipgo/internal/services/picking"
	"github.com/xelth-com/eckshipgo/internal/services/settings"
	"github.com/xelth-com/eckshipgo/internal/websocket"
)

// CarrierStore is the carrier persistence used by the API
type CarrierStore interface {
	ListCarriers(ctx context.Context, activeOnly bool) ([]models.DeliveryCarrier, error)
	GetCarrier(ctx context.Context, id int64) (*models.DeliveryCarrier, error)
	CreateCarrier(ctx context.Context, carrier *models.DeliveryCarrier) error
}

// UserStore is the user persistence used by login
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.UserAuth, error)
	TouchLogin(ctx context.Context, user *models.UserAuth) error
}

// Deps are the collaborators of the router
type Deps struct {
	Pickings   *picking.Service
	GLS        *settings.GLSService
	Carriers   CarrierStore
	Users      UserStore
	Generators *delivery.Registry
	Hub        *websocket.Hub
	JWTSecret  string
	Log        *logger.Logger
}

// Router wraps the mux router and the services
type Router struct {
	*mux.Router
	deps Deps
}

// NewRouter creates a new HTTP router with all routes
func NewRouter(deps Deps) *Router {
	r := &Router{
		Router: mux.NewRouter(),
		deps:   deps,
	}
	r.Use(middleware.RequestLogger(deps.Log))

	// Health check endpoint
	r.HandleFunc("/health", r.healthCheck).Methods("GET")

	// Auth routes
	auth := r.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.login).Methods("POST")

	// Label stations
	if deps.Hub != nil {
		r.HandleFunc("/ws", func(w http.ResponseWriter, req *http.Request) {
			websocket.ServeWs(deps.Hub, w, req)
		})
	}

	// API routes (protected)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware(deps.JWTSecret))

	api.HandleFunc("/carriers", r.listCarriers).Methods("GET")
	api.HandleFunc("/carriers", r.createCarrier).Methods("POST")
	api.HandleFunc("/carriers/{id:[0-9]+}", r.getCarrier).Methods("GET")

	api.HandleFunc("/pickings", r.createPicking).Methods("POST")
	api.HandleFunc("/pickings/onchange/carrier", r.onchangeCarrier).Methods("POST")
	api.HandleFunc("/pickings/onchange/options", r.onchangeOptions).Methods("POST")
	api.HandleFunc("/pickings/labels", r.generateLabels).Methods("POST")
	api.HandleFunc("/pickings/{id:[0-9]+}", r.getPicking).Methods("GET")
	api.HandleFunc("/pickings/{id:[0-9]+}/carrier", r.changeCarrier).Methods("PUT")
	api.HandleFunc("/pickings/{id:[0-9]+}/labels", r.listLabels).Methods("GET")

	api.HandleFunc("/labels/{id:[0-9]+}/download", r.downloadLabel).Methods("GET")

	admin := api.PathPrefix("/settings").Subrouter()
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.HandleFunc("/gls", r.getGLSSettings).Methods("GET")
	admin.HandleFunc("/gls", r.saveGLSSettings).Methods("PUT")

	return r
}

// healthCheck returns the health status of the API
func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	resp := map[string]interface{}{
		"status":    "ok",
		"startTime": buildinfo.StartTime,
		"commit":    buildinfo.CommitHash,
		"buildTime": buildinfo.BuildTime,
	}
	if r.deps.Generators != nil {
		resp["labelCarriers"] = r.deps.Generators.Types()
	}
	if r.deps.Hub != nil {
		resp["labelStations"] = len(r.deps.Hub.Stations())
	}
	respondJSON(w, http.StatusOK, resp)
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

// respondAppError renders business errors with their title and code.
// Anything else is logged and hidden behind a 500.
func respondAppError(w http.ResponseWriter, req *http.Request, err error) {
	if ue, ok := apperror.As(err); ok {
		status := apperror.HTTPStatus(err)
		respondJSON(w, status, map[string]interface{}{
			"error":   ue.Message,
			"title":   ue.Title,
			"code":    ue.Code,
			"details": ue.Details,
		})
		return
	}
	logger.FromContext(req.Context()).Errorw("request failed", "path", req.URL.Path, "error", err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

// decodeJSON reads the request body into v
func decodeJSON(req *http.Request, v interface{}) error {
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		return apperror.NewValidation("Invalid request payload")
	}
	return nil
}

// pathID parses the {id} route variable
func pathID(req *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		return 0, apperror.NewValidation("Invalid id")
	}
	return id, nil
}

// companyFromClaims returns the company of the logged-in user, or 0
func companyFromClaims(req *http.Request) int64 {
	claims, ok := middleware.Claims(req.Context())
	if !ok {
		return 0
	}
	if id, ok := claims["companyId"].(float64); ok {
		return int64(id)
	}
	return 0
}
