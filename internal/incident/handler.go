package incident

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/oceanix/incident-platform/internal"
	"github.com/oceanix/incident-platform/internal/authz"
	"github.com/oceanix/incident-platform/internal/transport"
	"github.com/oceanix/incident-platform/pkg/logger"
)

type ServiceAPI interface {
	Create(ctx context.Context, identity *authz.CallerIdentity, tenant *authz.TenantContext, dto CreateIncidentDTO) (*Incident, error)
	List(ctx context.Context, identity *authz.CallerIdentity, tenant *authz.TenantContext, allowAnyResource bool, limit, offset int) ([]*Incident, error)
	GetByID(ctx context.Context, tenant *authz.TenantContext, id int64) (*Incident, error)
	Resolve(ctx context.Context, identity *authz.CallerIdentity, tenant *authz.TenantContext, id int64) (*Incident, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.L()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) CreateIncident(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateIncidentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tenant, _ := authz.TenantFromContext(r.Context())
	inc, err := h.Service.Create(r.Context(), identity, tenant, dto)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, inc)
}

func (h *Handler) ListIncidents(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	tenant, _ := authz.TenantFromContext(r.Context())
	allowAny := authz.AllowAnyResourceFromContext(r.Context())

	incidents, err := h.Service.List(r.Context(), identity, tenant, allowAny, limit, offset)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"incidents": incidents,
		"limit":     limit,
		"offset":    offset,
	})
}

func (h *Handler) GetIncident(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	tenant, _ := authz.TenantFromContext(r.Context())
	inc, err := h.Service.GetByID(r.Context(), tenant, id)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) ResolveIncident(w http.ResponseWriter, r *http.Request) {
	identity, ok := authz.IdentityFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid incident id")
		return
	}

	tenant, _ := authz.TenantFromContext(r.Context())
	inc, err := h.Service.Resolve(r.Context(), identity, tenant, id)
	if err != nil {
		h.writeAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, inc)
}

func (h *Handler) writeAppError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
