package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/example/hr-assistant/internal/application"
)

var (
	errBadRequestBody      = errors.New("El formato de la solicitud no es válido.")
	errInvalidPersonID     = errors.New("El ID de persona no es válido.")
	errMissingSessionToken = errors.New("Debe proporcionar un token de autenticación.")
)

type responder struct {
	logger *slog.Logger
}

func newResponder(logger *slog.Logger) responder {
	if logger == nil {
		logger = slog.Default()
	}
	return responder{logger: logger}
}

func (r responder) writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}

	if status == http.StatusNoContent || payload == nil {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		r.loggerFor(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func (r responder) writeError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := localizedStatusMessage(status)
	if err != nil {
		if msg := strings.TrimSpace(err.Error()); msg != "" {
			message = msg
		}
		r.loggerFor(ctx).ErrorContext(ctx, "request failed", "status", status, "error", err)
	}

	r.writeJSON(ctx, w, status, errorResponse{Message: message})
}

func (r responder) handleServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		r.writeError(ctx, w, http.StatusInternalServerError, errors.New("unknown error"))
		return
	}

	switch {
	case errors.Is(err, application.ErrUnauthorized):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "AUTH_FORBIDDEN",
			Message:   "No tiene permisos para realizar esta operación.",
		})
	case errors.Is(err, application.ErrNotFound):
		r.writeJSON(ctx, w, http.StatusNotFound, errorResponse{Message: "El recurso solicitado no existe."})
	case errors.Is(err, application.ErrAlreadyExists):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{Message: "Ya existe un registro con esos datos."})
	case errors.Is(err, application.ErrAccountDisabled):
		r.writeJSON(ctx, w, http.StatusForbidden, errorResponse{
			ErrorCode: "AUTH_ACCOUNT_DISABLED",
			Message:   "La cuenta está deshabilitada.",
		})
	case errors.Is(err, application.ErrSessionExpired), errors.Is(err, application.ErrSessionRevoked):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_SESSION_EXPIRED",
			Message:   "La sesión ya no es válida. Inicie sesión nuevamente.",
		})
	case errors.Is(err, application.ErrInvalidCredentials):
		r.writeJSON(ctx, w, http.StatusUnauthorized, errorResponse{
			ErrorCode: "AUTH_INVALID_CREDENTIALS",
			Message:   "El correo o la contraseña no son correctos.",
		})
	case errors.Is(err, application.ErrCommandRejected):
		r.writeJSON(ctx, w, http.StatusConflict, errorResponse{
			ErrorCode: "COMMAND_REJECTED",
			Message:   "El comando no puede ejecutarse tal como está escrito.",
		})
	default:
		var vErr *application.ValidationError
		if errors.As(err, &vErr) {
			details := localizeValidationErrors(vErr)
			r.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
				Message: "Los datos ingresados contienen errores.",
				Errors:  details,
			})
			return
		}

		r.writeJSON(ctx, w, http.StatusInternalServerError, errorResponse{Message: "Se produjo un error interno en el servidor."})
	}
}

func (r responder) loggerFor(ctx context.Context) *slog.Logger {
	if logger := LoggerFromContext(ctx); logger != nil {
		return logger
	}
	return r.logger
}

func localizedStatusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "La solicitud no es válida."
	case http.StatusUnauthorized:
		return "Se requiere autenticación."
	case http.StatusForbidden:
		return "No tiene permisos para realizar esta operación."
	case http.StatusNotFound:
		return "El recurso solicitado no existe."
	case http.StatusConflict:
		return "La solicitud entra en conflicto con el estado actual del recurso."
	case http.StatusUnprocessableEntity:
		return "Los datos ingresados contienen errores."
	default:
		return "Se produjo un error interno en el servidor."
	}
}

func localizeValidationErrors(vErr *application.ValidationError) map[string]string {
	if vErr == nil || len(vErr.FieldErrors) == 0 {
		return nil
	}

	translated := make(map[string]string, len(vErr.FieldErrors))
	for field, msg := range vErr.FieldErrors {
		translated[field] = translateMessage(msg)
	}
	return translated
}

// translateMessage localizes the internal English messages produced by the
// application and command layers. Unknown messages pass through unchanged.
func translateMessage(message string) string {
	switch message {
	case "identifier is required":
		return "El identificador es obligatorio."
	case "identifier checksum is invalid":
		return "El dígito verificador del identificador no es válido."
	case "full name is required":
		return "El nombre completo es obligatorio."
	case "status is not recognized":
		return "El estado indicado no es válido."
	case "command text is required":
		return "Debe ingresar el texto del comando."
	case "command text is too long":
		return "El texto del comando es demasiado largo."
	case "command text is empty":
		return "El texto del comando está vacío."
	case "no valid identifier found":
		return "No se encontró un RUT válido en el comando."
	case "no start date found":
		return "No se encontró una fecha de inicio en el comando."
	case "end date is before start date":
		return "La fecha de término es anterior a la fecha de inicio."
	case "category not recognized":
		return "No se reconoce el tipo de solicitud."
	case "valid identifier required":
		return "Se requiere un RUT válido."
	case "start date required":
		return "Se requiere una fecha de inicio."
	case "end date or duration required":
		return "Se requiere una fecha de término o una duración."
	case "time required":
		return "Se requiere una hora."
	case "person is terminated or inactive":
		return "La persona está desvinculada o inactiva."
	case "overlaps an existing absence":
		return "Se superpone con una ausencia ya registrada."
	case "person not found":
		return "No se encontró a la persona en el directorio."
	default:
		return message
	}
}

func translateMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	for _, msg := range messages {
		out = append(out, translateMessage(msg))
	}
	return out
}

type errorResponse struct {
	ErrorCode string            `json:"error_code,omitempty"`
	Message   string            `json:"message"`
	Errors    map[string]string `json:"errors,omitempty"`
}
