package guides

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/google/uuid"

	"github.com/brandforge/giftguide/internal/pipeline"
	"github.com/brandforge/giftguide/pkg/delivery"
	"github.com/brandforge/giftguide/pkg/handlers"
	"github.com/brandforge/giftguide/pkg/pagination"
	"github.com/brandforge/giftguide/pkg/routes"
)

// Handler provides HTTP endpoints for guide operations.
type Handler struct {
	sys         System
	logger      *slog.Logger
	pagination  pagination.Config
	environment string
}

// SearchRequest combines pagination and filter criteria for the search endpoint.
type SearchRequest struct {
	pagination.PageRequest
	Filters
}

// NewHandler creates a Handler with the given system, logger, pagination
// config, and environment name. The environment gates stack traces in
// generation error responses.
func NewHandler(
	sys System,
	logger *slog.Logger,
	pagination pagination.Config,
	environment string,
) *Handler {
	return &Handler{
		sys:         sys,
		logger:      logger.With("handler", "guides"),
		pagination:  pagination,
		environment: environment,
	}
}

// Routes returns the route group definition for guide endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/guides",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Generate},
			{Method: "GET", Pattern: "", Handler: h.List},
			{Method: "POST", Pattern: "/search", Handler: h.Search},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "GET", Pattern: "/{id}/document", Handler: h.Document},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
		},
	}
}

// Generate runs the full guide pipeline for a JSON request body. The
// response reports success whenever a document was produced; a failed
// delivery degrades the message rather than the status. Pass ?preview=true
// to include the composed markup in the response.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("generation panicked", "panic", rec)
			resp := GenerateResponse{
				Success: false,
				Error:   fmt.Sprintf("internal error: %v", rec),
			}
			if h.environment != "production" {
				resp.Stack = string(debug.Stack())
			}
			handlers.RespondJSON(w, http.StatusInternalServerError, resp)
		}
	}()

	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondJSON(w, http.StatusBadRequest, GenerateResponse{
			Success: false,
			Error:   fmt.Sprintf("invalid request body: %v", err),
		})
		return
	}

	outcome, err := h.sys.Generate(r.Context(), req)
	if err != nil {
		h.logger.Warn("generation failed", "company", req.CompanyName, "error", err)
		handlers.RespondJSON(w, MapHTTPStatus(err), GenerateResponse{
			Success: false,
			Error:   err.Error(),
		})
		return
	}

	result := outcome.Result
	resp := GenerateResponse{
		Success:        true,
		Message:        deliveryMessage(result),
		CompanyName:    result.Request.CompanyName,
		RecipientEmail: result.Request.RecipientEmail,
		Delivery:       result.Delivery,
		Guide:          outcome.Record,
	}
	if r.URL.Query().Get("preview") == "true" {
		resp.HTMLPreview = result.Markup
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}

// List returns a paginated list of guides with optional query parameter filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pagination)
	filters := FiltersFromQuery(r.URL.Query())

	result, err := h.sys.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Search accepts a JSON body with pagination and filter criteria and returns matching guides.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	req.PageRequest.Normalize(h.pagination)

	result, err := h.sys.List(r.Context(), req.PageRequest, req.Filters)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Find returns a single guide record by its UUID path parameter.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	g, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, g)
}

// Document streams the stored PDF artifact for a guide.
func (h *Handler) Document(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	reader, g, err := h.sys.Document(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer reader.Close()

	filename := delivery.AttachmentFilename(g.CompanyName) + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, reader); err != nil {
		h.logger.Warn("document stream interrupted", "id", id, "error", err)
	}
}

// Delete removes a guide record and its stored artifact.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func deliveryMessage(result *pipeline.Result) string {
	switch result.Delivery {
	case pipeline.DeliverySent:
		return fmt.Sprintf("Gift guide generated and sent to %s", result.Request.RecipientEmail)
	case pipeline.DeliverySkipped:
		return "Gift guide generated; delivery skipped (not configured)"
	case pipeline.DeliveryFailed:
		return fmt.Sprintf("Gift guide generated but not delivered: %s", result.DeliveryDetail)
	default:
		return "Gift guide generated"
	}
}
