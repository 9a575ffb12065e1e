package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/judgedesk/internal/errors"
	"github.com/abrezinsky/judgedesk/internal/services"
)

// Error codes for standardized API error responses
const (
	ErrCodeBadRequest     = "BAD_REQUEST"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeInternalServer = "INTERNAL_SERVER_ERROR"
	ErrCodeUnavailable    = "EVENT_API_UNAVAILABLE"
	ErrCodeNotConfigured  = "NOT_CONFIGURED"
)

// APIError represents an error with an HTTP status code and error code
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *APIError) Error() string {
	return e.Message
}

// ErrInternalServer is the body sent for every 500
var ErrInternalServer = &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternalServer, Message: "Internal server error"}

// NewAPIError creates a new API error with custom message and code
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// BadRequest creates a 400 error with custom message and auto-assigned error code
func BadRequest(message string) *APIError {
	code := ErrCodeBadRequest
	lower := strings.ToLower(message)
	if strings.Contains(lower, "validation") || strings.Contains(lower, "invalid") || strings.Contains(lower, "must be") {
		code = ErrCodeValidation
	}
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message}
}

// NotFound creates a 404 error with custom message
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// Conflict creates a 409 error with custom message
func Conflict(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Code: ErrCodeConflict, Message: message}
}

// BadGateway creates a 502 error for event API failures
func BadGateway(message string) *APIError {
	return &APIError{Status: http.StatusBadGateway, Code: ErrCodeUnavailable, Message: message}
}

// InternalError creates a 500 error that hides the original error
func InternalError() *APIError {
	return NewAPIError(http.StatusInternalServerError, ErrCodeInternalServer, ErrInternalServer.Message)
}

// respondJSON writes a JSON response with the given status code. A value
// that cannot be encoded is logged and answered with a 500.
func (h *Handlers) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if data == nil {
		w.WriteHeader(status)
		return
	}

	body, err := json.Marshal(data)
	if err != nil {
		h.logError("Failed to encode response", "error", err)
		body, _ = json.Marshal(ErrInternalServer)
		status = http.StatusInternalServerError
	}
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// respondOK writes a 200 OK JSON response
func (h *Handlers) respondOK(w http.ResponseWriter, data interface{}) {
	h.respondJSON(w, http.StatusOK, data)
}

// respondSuccess writes a 200 OK with a message
func (h *Handlers) respondSuccess(w http.ResponseWriter, message string) {
	h.respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

// respondError writes an error response. Errors that map to a 500 are logged.
func (h *Handlers) respondError(w http.ResponseWriter, err error) {
	apiErr, ok := err.(*APIError)
	if !ok {
		apiErr = ToAPIError(err)
	}
	if apiErr.Status >= http.StatusInternalServerError && apiErr.Status != http.StatusBadGateway {
		h.logError("Internal error", "error", err)
	}
	h.respondJSON(w, apiErr.Status, apiErr)
}

func (h *Handlers) logError(msg string, args ...any) {
	if h.Log != nil {
		h.Log.Error(msg, args...)
	}
}

// decodeJSON decodes JSON from request body into the target
func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if err == io.EOF {
			return BadRequest("Request body is empty")
		}
		return BadRequest("Invalid JSON: " + err.Error())
	}
	return nil
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be omitted
func decodeOptionalJSON(r *http.Request, target interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil && err != io.EOF {
		return BadRequest("Invalid JSON: " + err.Error())
	}
	return nil
}

// parseIntParam extracts and parses an integer URL parameter
func parseIntParam(r *http.Request, name string) (int, error) {
	param := chi.URLParam(r, name)
	if param == "" {
		return 0, BadRequest("Missing " + name + " parameter")
	}
	id, err := strconv.Atoi(param)
	if err != nil {
		return 0, BadRequest("Invalid " + name + " parameter")
	}
	return id, nil
}

// parseIntQuery parses an optional integer query parameter; ok is false when absent
func parseIntQuery(r *http.Request, name string) (value int, ok bool, err error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, BadRequest("Invalid " + name + " parameter")
	}
	return value, true, nil
}

// ToAPIError converts service errors to appropriate API errors
func ToAPIError(err error) *APIError {
	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		switch appErr.Kind {
		case errors.ErrNotFound:
			return NotFound(appErr.Message)
		case errors.ErrValidation, errors.ErrInvalidInput:
			return &APIError{Status: http.StatusBadRequest, Code: ErrCodeValidation, Message: appErr.Message}
		case errors.ErrConflict:
			return Conflict(appErr.Message)
		case errors.ErrUnavailable:
			return BadGateway(appErr.Message)
		default:
			return InternalError()
		}
	}

	if svcErr, ok := err.(*services.ServiceError); ok {
		if svcErr == services.ErrBaseURLNotSet || svcErr == services.ErrNoProgramSelected {
			return NewAPIError(http.StatusConflict, ErrCodeNotConfigured, svcErr.Message)
		}
		return BadRequest(svcErr.Message)
	}
	var settingErr *services.InvalidSettingError
	if stderrors.As(err, &settingErr) {
		return NewAPIError(http.StatusBadRequest, ErrCodeValidation, settingErr.Error())
	}

	return InternalError()
}
