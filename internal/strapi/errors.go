package strapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/octobees/cms-seeder/internal/dto"
)

// ServiceError is a non-2xx answer from the CMS, decoded from its error envelope.
type ServiceError struct {
	StatusCode int
	Name       string
	Message    string
	Details    map[string]any
	Body       []byte
}

func (e *ServiceError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("strapi: %d %s: %s", e.StatusCode, e.Name, e.Message)
	}
	return fmt.Sprintf("strapi: %d: %s", e.StatusCode, e.Message)
}

// Envelope returns the service's own error envelope, indented, for logging.
// Bodies that are not JSON are returned as-is.
func (e *ServiceError) Envelope() string {
	if len(e.Body) == 0 {
		return e.Message
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, e.Body, "", "  "); err != nil {
		return string(e.Body)
	}
	return buf.String()
}

func newServiceError(status int, body []byte) *ServiceError {
	svcErr := &ServiceError{StatusCode: status, Body: body}

	var envelope dto.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != nil {
		svcErr.Name = envelope.Error.Name
		svcErr.Message = envelope.Error.Message
		svcErr.Details = envelope.Error.Details
	}

	if svcErr.Message == "" {
		if text := strings.TrimSpace(string(body)); text != "" && envelope.Error == nil && !json.Valid(body) {
			svcErr.Message = text
		} else {
			svcErr.Message = http.StatusText(status)
		}
	}
	return svcErr
}
