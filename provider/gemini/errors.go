package gemini

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"

	"github.com/soffai/studio/core"
)

// mapError re-maps a genai SDK failure onto the core error taxonomy.
// Structured codes are preferred; the two substring checks the Gemini API is
// known to emit without a structured status are kept as a fallback. Raw
// provider text travels in the wrapped error for logging and never reaches
// the display layer (core.UserMessage hides it).
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if status, msg, ok := apiStatus(err); ok {
		return mapHTTPStatus(status, msg)
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key not valid"):
		return fmt.Errorf("%w: %s", core.ErrInvalidCredential, msg)
	case strings.Contains(msg, "Requested entity was not found"):
		return fmt.Errorf("%w: %s", core.ErrPermissionDenied, msg)
	}
	return fmt.Errorf("%w: %v", core.ErrTransport, err)
}

// apiStatus extracts an HTTP-equivalent status code and message from the
// structured error types the SDK can produce.
func apiStatus(err error) (int, string, bool) {
	var gaxErr *apierror.APIError
	if errors.As(err, &gaxErr) {
		if s := gaxErr.GRPCStatus(); s != nil && s.Code() != codes.OK {
			return httpFromGRPC(s.Code()), s.Message(), true
		}
		if code := gaxErr.HTTPCode(); code > 0 {
			return code, gaxErr.Error(), true
		}
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	return 0, "", false
}

func httpFromGRPC(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// mapHTTPStatus maps an HTTP-equivalent status onto the taxonomy. 404 maps
// to permission denied: the video model answers "Requested entity was not
// found" for credentials without video access, and the remedy (select a
// different key) matches the permission message.
func mapHTTPStatus(status int, msg string) error {
	switch status {
	case http.StatusBadRequest:
		if strings.Contains(msg, "API key not valid") {
			return fmt.Errorf("%w: %s", core.ErrInvalidCredential, msg)
		}
		return fmt.Errorf("%w: %s", core.ErrTransport, msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", core.ErrInvalidCredential, msg)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", core.ErrPermissionDenied, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", core.ErrPermissionDenied, msg)
	default:
		return fmt.Errorf("%w: %s", core.ErrTransport, msg)
	}
}
