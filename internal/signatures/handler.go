package signatures

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/JaimeStill/signet/pkg/handlers"
	"github.com/JaimeStill/signet/pkg/routes"
)

// Handler provides HTTP endpoints for signatures and signature requests.
type Handler struct {
	sys    System
	logger *slog.Logger
}

func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "signatures"),
	}
}

// ProviderStatus is the body of a provider status callback.
type ProviderStatus struct {
	Reference string `json:"reference"`
	Status    string `json:"status"`
}

// Routes returns the route groups for signatures and signature requests.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Children: []routes.Group{
			{
				Prefix: "/signatures",
				Routes: []routes.Route{
					{Method: "GET", Pattern: "", Handler: h.List},
					{Method: "POST", Pattern: "", Handler: h.Initiate},
					{Method: "GET", Pattern: "/fully-signed", Handler: h.FullySigned},
					{Method: "GET", Pattern: "/{id}", Handler: h.Find},
					{Method: "PUT", Pattern: "/{id}", Handler: h.Update},
					{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
					{Method: "POST", Pattern: "/{id}/cancel", Handler: h.Cancel},
					{Method: "GET", Pattern: "/{id}/requests", Handler: h.ListRequests},
				},
			},
			{
				Prefix: "/signature-requests",
				Routes: []routes.Route{
					{Method: "POST", Pattern: "/expire", Handler: h.Expire},
					{Method: "POST", Pattern: "/provider-status", Handler: h.ProviderStatus},
					{Method: "GET", Pattern: "/{id}", Handler: h.FindRequest},
					{Method: "POST", Pattern: "/{id}/notify", Handler: h.Notify},
					{Method: "POST", Pattern: "/{id}/remind", Handler: h.Remind},
				},
			},
		},
	}
}

// List returns the signatures of the document named by the document_id query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	documentID, ok := h.queryID(w, r, "document_id")
	if !ok {
		return
	}

	sigs, err := h.sys.ListByDocument(r.Context(), documentID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sigs)
}

func (h *Handler) Initiate(w http.ResponseWriter, r *http.Request) {
	var sig Signature
	if err := json.NewDecoder(r.Body).Decode(&sig); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidArgument, err))
		return
	}

	created, err := h.sys.Initiate(r.Context(), sig)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, created)
}

func (h *Handler) FullySigned(w http.ResponseWriter, r *http.Request) {
	documentID, ok := h.queryID(w, r, "document_id")
	if !ok {
		return
	}

	signed, err := h.sys.IsDocumentFullySigned(r.Context(), documentID)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"fully_signed": signed})
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sig, err := h.sys.Find(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sig)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var sig Signature
	if err := json.NewDecoder(r.Body).Decode(&sig); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidArgument, err))
		return
	}
	sig.ID = id

	updated, err := h.sys.Update(r.Context(), sig)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, updated)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		h.respondError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	sig, err := h.sys.Cancel(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sig)
}

func (h *Handler) ListRequests(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	reqs, err := h.sys.ListRequests(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, reqs)
}

func (h *Handler) FindRequest(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, err := h.sys.FindRequest(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, req)
}

func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, err := h.sys.SendNotification(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, req)
}

func (h *Handler) Remind(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, err := h.sys.SendReminder(r.Context(), id)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, req)
}

// Expire runs one expiry sweep and returns the requests it expired.
func (h *Handler) Expire(w http.ResponseWriter, r *http.Request) {
	expired, err := h.sys.ProcessExpiredRequests(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, expired)
}

func (h *Handler) ProviderStatus(w http.ResponseWriter, r *http.Request) {
	var body ProviderStatus
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidArgument, err))
		return
	}

	req, err := h.sys.ApplyProviderStatus(r.Context(), body.Reference, body.Status)
	if err != nil {
		h.respondError(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, req)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		handlers.RespondViolations(w, h.logger, err, verr.Violations)
		return
	}
	handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: invalid id", ErrInvalidArgument))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) queryID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.URL.Query().Get(name))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %s", ErrInvalidArgument, name))
		return uuid.Nil, false
	}
	return id, true
}
