package media

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/soffai/studio/core"
)

var (
	// ErrDecode is returned for malformed base64 payloads. Decoding never
	// truncates silently.
	ErrDecode = errors.New("media: malformed base64 payload")
	// ErrMalformedAudio is returned for PCM buffers that are not aligned to
	// the sample block size (for 16-bit mono, an odd byte length).
	ErrMalformedAudio = errors.New("media: pcm buffer not sample aligned")
	// ErrUnsupportedType is returned for attachments outside the MIME
	// allow-list.
	ErrUnsupportedType = errors.New("media: unsupported attachment type")
	// ErrInvalidDataURI is returned for attachment payloads that are not
	// well-formed base64 data-URIs.
	ErrInvalidDataURI = errors.New("media: invalid data uri")
)

// DecodeBase64 decodes a standard base64 payload as emitted by the provider.
func DecodeBase64(s string) ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return b, nil
}

// EncodeBase64 is the inverse of DecodeBase64, used when handing attachment
// bytes back to the provider wire format.
func EncodeBase64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// ParseAttachment converts an externally supplied base64 data-URI (the form
// produced by the file-selection layer) into a core.Attachment with decoded
// bytes. The MIME type must be on the core allow-list.
func ParseAttachment(name, dataURI string) (core.Attachment, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return core.Attachment{}, ErrInvalidDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return core.Attachment{}, ErrInvalidDataURI
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return core.Attachment{}, ErrInvalidDataURI
	}
	if !core.AllowedAttachmentType(mimeType) {
		return core.Attachment{}, fmt.Errorf("%w: %s", ErrUnsupportedType, mimeType)
	}
	data, err := DecodeBase64(payload)
	if err != nil {
		return core.Attachment{}, err
	}
	return core.Attachment{Name: name, MIMEType: mimeType, Data: data}, nil
}
