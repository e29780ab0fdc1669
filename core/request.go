package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// AllowedAttachmentTypes is the MIME allow-list for uploaded attachments.
// The external file source is expected to enforce it; ParseAttachment does so
// again so the core never carries an unsupported payload.
var AllowedAttachmentTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Attachment is an uploaded file consumed as an additional generation input.
// Data holds the raw decoded bytes, never a data-URI.
type Attachment struct {
	Name     string `json:"name"`
	MIMEType string `json:"mime_type"`
	Data     []byte `json:"data,omitempty"`
}

// AllowedAttachmentType reports whether the MIME type is on the allow-list.
func AllowedAttachmentType(mimeType string) bool {
	for _, t := range AllowedAttachmentTypes {
		if t == mimeType {
			return true
		}
	}
	return false
}

// Request is a single immutable generation request. Once dispatched its
// fields must not be mutated; the orchestrator keys its in-flight guard on
// the request ID.
type Request struct {
	ID          string         `json:"id"`
	Category    Category       `json:"category"`
	Prompt      string         `json:"prompt"`
	Attachments []Attachment   `json:"attachments,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
	Created     time.Time      `json:"created"`
}

// NewRequest constructs a request with a fresh ID and creation timestamp.
// The options map is copied so later caller mutation cannot leak in.
func NewRequest(category Category, prompt string, attachments []Attachment, options map[string]any) Request {
	opts := make(map[string]any, len(options))
	for k, v := range options {
		opts[k] = v
	}
	atts := make([]Attachment, len(attachments))
	copy(atts, attachments)
	return Request{
		ID:          NewID(),
		Category:    category,
		Prompt:      prompt,
		Attachments: atts,
		Options:     opts,
		Created:     time.Now().UTC(),
	}
}

// Empty reports whether the request carries no usable input (no prompt text
// and no attachments). Empty requests are rejected before dispatch.
func (r Request) Empty() bool {
	return strings.TrimSpace(r.Prompt) == "" && len(r.Attachments) == 0
}

// Option returns the raw option value and an existence flag.
func (r Request) Option(key string) (any, bool) {
	v, ok := r.Options[key]
	return v, ok
}

// StringOption returns the option value rendered as a string, or the fallback
// when absent or empty.
func (r Request) StringOption(key, fallback string) string {
	v, ok := r.Options[key]
	if !ok {
		return fallback
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return fallback
	}
	return s
}

// NewID generates a unique identifier for requests, sessions and events.
func NewID() string { return uuid.NewString() }
