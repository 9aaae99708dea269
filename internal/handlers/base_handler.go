// Package handlers wires the HTTP API: request decoding, validation and the
// success/error response envelope.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// validate is the shared request validator. The custom "username" tag
// matches the registration username policy.
var validate = newValidator()

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,30}$`)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernameRegex.MatchString(fl.Field().String())
	})
	return v
}

type BaseHandler struct {
	logger *zap.Logger
}

// respondJSON sends a success envelope with the payload merged at the top
// level of the response object.
func (h *BaseHandler) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope{Success: true, Data: data}); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// respondError sends an error JSON response
func (h *BaseHandler) respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "error": message})
}

// decodeJSON decodes and validates a JSON request body.
func (h *BaseHandler) decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}

	if err := validate.Struct(dst); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("invalid field %q: failed %q validation", errs[0].Field(), errs[0].Tag())
		}
		return err
	}
	return nil
}

// envelope flattens the payload fields next to the success flag, so
// responses look like {"success": true, "content_id": ...} instead of
// nesting everything under a data key.
type envelope struct {
	Success bool
	Data    any
}

func (e envelope) MarshalJSON() ([]byte, error) {
	merged := map[string]json.RawMessage{}

	if e.Data != nil {
		raw, err := json.Marshal(e.Data)
		if err != nil {
			return nil, err
		}
		// Non-object payloads keep a data key.
		if len(raw) > 0 && raw[0] == '{' {
			if err := json.Unmarshal(raw, &merged); err != nil {
				return nil, err
			}
		} else {
			merged["data"] = raw
		}
	}

	success, _ := json.Marshal(e.Success)
	merged["success"] = success
	return json.Marshal(merged)
}
