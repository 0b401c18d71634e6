package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/loyaltyhub/loyalty-points/internal/domain"
	"github.com/loyaltyhub/loyalty-points/internal/usecase"
	"github.com/rs/zerolog/hlog"
)

// Service is the read side and the reward operations the handler needs.
// Writes that may travel over Kafka go through usecase.LoyaltyGateway.
type Service interface {
	ResolveIdentity(ctx context.Context, phone string, role domain.Role) (*domain.Identity, error)
	GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error)
	GetCustomerPoints(ctx context.Context, phone string) (*domain.PointsSummary, error)
	GetCustomerVisits(ctx context.Context, phone string) ([]domain.VisitWithBusiness, error)
	ListCustomerRewards(ctx context.Context, phone string) ([]domain.RewardEligibility, error)
	CustomerInsights(ctx context.Context, phone string) ([]string, error)
	CustomerDashboard(ctx context.Context, phone string) (*domain.CustomerDashboard, error)
	RedeemReward(ctx context.Context, phone string, rewardID uuid.UUID) (*domain.Redemption, error)
	GetBusinessAnalytics(ctx context.Context, businessID uuid.UUID) (*domain.BusinessAnalytics, error)
	GetRecentVisits(ctx context.Context, businessID uuid.UUID, limit int) ([]domain.VisitWithCustomer, error)
	ListBusinessRewards(ctx context.Context, businessID uuid.UUID) ([]domain.Reward, error)
	CreateReward(ctx context.Context, businessID uuid.UUID, name, description string, pointsRequired int) (*domain.Reward, error)
	BusinessInsights(ctx context.Context, businessID uuid.UUID) ([]string, error)
	ListActiveRewards(ctx context.Context) ([]domain.RewardWithBusiness, error)
}

type RegisterCustomerRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
}

type RegisterBusinessRequest struct {
	PhoneNumber    string `json:"phone_number"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	PointsPerVisit int    `json:"points_per_visit"`
}

// CheckInRequest leaves Points nil to award the business's points_per_visit.
type CheckInRequest struct {
	CustomerPhone string `json:"customer_phone"`
	Points        *int   `json:"points"`
}

type CreateRewardRequest struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	PointsRequired int    `json:"points_required"`
}

type RedeemRequest struct {
	RewardID string `json:"reward_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Next  string `json:"next,omitempty"`
}

type InsightsResponse struct {
	Insights []string `json:"insights"`
}

type Handler struct {
	service Service
	gateway usecase.LoyaltyGateway
}

func NewHandler(service Service, gateway usecase.LoyaltyGateway) *Handler {
	return &Handler{service: service, gateway: gateway}
}

func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/identity/{role}/{phone}", h.ResolveIdentity)
		r.Get("/rewards", h.ListActiveRewards)

		r.Post("/customers", h.RegisterCustomer)
		r.Route("/customers/{phone}", func(r chi.Router) {
			r.Get("/points", h.GetCustomerPoints)
			r.Get("/visits", h.GetCustomerVisits)
			r.Get("/rewards", h.ListCustomerRewards)
			r.Get("/insights", h.CustomerInsights)
			r.Get("/dashboard", h.CustomerDashboard)
			r.Post("/redemptions", h.RedeemReward)
		})

		r.Post("/businesses", h.RegisterBusiness)
		r.Route("/businesses/{id}", func(r chi.Router) {
			r.Get("/", h.GetBusiness)
			r.Post("/checkins", h.CheckIn)
			r.Get("/analytics", h.GetBusinessAnalytics)
			r.Get("/visits", h.GetRecentVisits)
			r.Get("/rewards", h.ListBusinessRewards)
			r.Post("/rewards", h.CreateReward)
			r.Get("/insights", h.BusinessInsights)
		})
	})
}

func (h *Handler) ResolveIdentity(w http.ResponseWriter, r *http.Request) {
	role := domain.Role(chi.URLParam(r, "role"))
	ident, err := h.service.ResolveIdentity(r.Context(), chi.URLParam(r, "phone"), role)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: string(role) + " not registered", Next: "register"})
			return
		}
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ident)
}

func (h *Handler) RegisterCustomer(w http.ResponseWriter, r *http.Request) {
	var req RegisterCustomerRequest
	if !decode(w, r, &req) {
		return
	}

	customer, err := h.gateway.RegisterCustomer(r.Context(), req.PhoneNumber, req.Name)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, customer)
}

func (h *Handler) RegisterBusiness(w http.ResponseWriter, r *http.Request) {
	var req RegisterBusinessRequest
	if !decode(w, r, &req) {
		return
	}

	business, err := h.gateway.RegisterBusiness(r.Context(), req.PhoneNumber, req.Name, req.Type, req.PointsPerVisit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, business)
}

func (h *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}

	business, err := h.service.GetBusiness(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, business)
}

func (h *Handler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}
	var req CheckInRequest
	if !decode(w, r, &req) {
		return
	}

	var points int
	if req.Points != nil {
		points = *req.Points
	} else {
		if err := domain.ValidatePhone(req.CustomerPhone); err != nil {
			writeError(w, r, err)
			return
		}
		business, err := h.service.GetBusiness(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		points = business.PointsPerVisit
	}

	visit, err := h.gateway.CheckIn(r.Context(), req.CustomerPhone, id, points)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, visit)
}

func (h *Handler) GetCustomerPoints(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.GetCustomerPoints(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) GetCustomerVisits(w http.ResponseWriter, r *http.Request) {
	visits, err := h.service.GetCustomerVisits(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visits)
}

func (h *Handler) ListCustomerRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.service.ListCustomerRewards(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (h *Handler) CustomerInsights(w http.ResponseWriter, r *http.Request) {
	insights, err := h.service.CustomerInsights(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, InsightsResponse{Insights: insights})
}

func (h *Handler) CustomerDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.CustomerDashboard(r.Context(), chi.URLParam(r, "phone"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) RedeemReward(w http.ResponseWriter, r *http.Request) {
	var req RedeemRequest
	if !decode(w, r, &req) {
		return
	}
	rewardID, err := uuid.Parse(req.RewardID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid reward id", Field: "reward_id"})
		return
	}

	redemption, err := h.service.RedeemReward(r.Context(), chi.URLParam(r, "phone"), rewardID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, redemption)
}

func (h *Handler) GetBusinessAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}

	analytics, err := h.service.GetBusinessAnalytics(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

func (h *Handler) GetRecentVisits(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be an integer", Field: "limit"})
			return
		}
		limit = n
	}

	visits, err := h.service.GetRecentVisits(r.Context(), id, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visits)
}

func (h *Handler) ListBusinessRewards(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}

	rewards, err := h.service.ListBusinessRewards(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

func (h *Handler) CreateReward(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}
	var req CreateRewardRequest
	if !decode(w, r, &req) {
		return
	}

	reward, err := h.service.CreateReward(r.Context(), id, req.Name, req.Description, req.PointsRequired)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, reward)
}

func (h *Handler) BusinessInsights(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}

	insights, err := h.service.BusinessInsights(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, InsightsResponse{Insights: insights})
}

func (h *Handler) ListActiveRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.service.ListActiveRewards(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rewards)
}

func businessID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid business id", Field: "id"})
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{Error: err.Error()}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Int("status", status).Msg("request failed")
		resp.Error = http.StatusText(status)
	}
	writeJSON(w, status, resp)
}

// StatusFor maps a service error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrCustomerNotFound),
		errors.Is(err, domain.ErrBusinessNotFound),
		errors.Is(err, domain.ErrRewardNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateKey):
		return http.StatusConflict
	case errors.Is(err, domain.ErrRewardInactive), errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
