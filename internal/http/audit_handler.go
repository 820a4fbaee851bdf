package http

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/example/hr-assistant/internal/application"
)

type auditService interface {
	ListAuditEntries(ctx context.Context, principal application.Principal, limit int) ([]application.AuditRecord, error)
}

type AuditHandler struct {
	service   auditService
	responder responder
	logger    *slog.Logger
}

const defaultAuditLimit = 50

func NewAuditHandler(service auditService, logger *slog.Logger) *AuditHandler {
	base := defaultLogger(logger)
	return &AuditHandler{service: service, responder: newResponder(base), logger: base}
}

func (h *AuditHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "AuditHandler", operation, attrs...)
}

func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	limit := defaultAuditLimit
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.log(r.Context(), "List", "error_kind", "bad_request").ErrorContext(r.Context(), "invalid audit limit", "limit", raw)
			h.responder.writeError(r.Context(), w, http.StatusBadRequest, nil)
			return
		}
		limit = parsed
	}

	logger := h.log(r.Context(), "List", "principal_id", principal.OperatorID, "limit", limit)

	entries, err := h.service.ListAuditEntries(r.Context(), principal, limit)
	if err != nil {
		logger.ErrorContext(r.Context(), "audit list failed", "error", err, "error_kind", application.ErrorKind(err))
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	logger.With("result_count", len(entries)).InfoContext(r.Context(), "audit entries listed")
	h.responder.writeJSON(r.Context(), w, http.StatusOK, listAuditResponse{Entries: toAuditDTOs(entries)})
}

type listAuditResponse struct {
	Entries []auditEntryDTO `json:"entries"`
}

type auditEntryDTO struct {
	ID           string `json:"id"`
	RawText      string `json:"raw_text"`
	Category     string `json:"category"`
	Payload      string `json:"payload,omitempty"`
	ExecutedBy   string `json:"executed_by"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
	CreatedAt    string `json:"created_at"`
}

func toAuditDTOs(entries []application.AuditRecord) []auditEntryDTO {
	if len(entries) == 0 {
		return nil
	}
	out := make([]auditEntryDTO, 0, len(entries))
	for _, entry := range entries {
		out = append(out, auditEntryDTO{
			ID:           entry.ID,
			RawText:      entry.RawText,
			Category:     entry.Category,
			Payload:      entry.Payload,
			ExecutedBy:   entry.ExecutedBy,
			Status:       entry.Status,
			ErrorMessage: entry.ErrorMessage,
			CreatedAt:    entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		})
	}
	return out
}
