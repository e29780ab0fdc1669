package core

import "errors"

// Error taxonomy shared by the dispatcher, poller and orchestrator. Every
// provider-level failure is re-mapped onto one of these sentinels at the
// adapter boundary; raw provider error text is logged, never surfaced.
var (
	// ErrEmptyPrompt marks a request with no usable input.
	ErrEmptyPrompt = errors.New("no prompt text or attachments provided")
	// ErrUnsupportedCategory marks a category outside the closed set.
	// Defensive; unreachable through the public constructors.
	ErrUnsupportedCategory = errors.New("unsupported generation category")
	// ErrCredentialRequired marks a video request attempted before a
	// credential was selected through the credential host.
	ErrCredentialRequired = errors.New("no credential selected")
	// ErrInvalidCredential marks a credential the provider rejected.
	ErrInvalidCredential = errors.New("credential rejected by provider")
	// ErrPermissionDenied marks an operation the provider refuses for the
	// current credential (e.g. video generation not enabled for the key).
	ErrPermissionDenied = errors.New("operation not permitted for credential")
	// ErrMissingAsset marks an operation that reported done without a
	// retrievable asset.
	ErrMissingAsset = errors.New("operation finished without an asset")
	// ErrTransport collapses every other network or provider failure.
	ErrTransport = errors.New("provider request failed")
)

// UserMessage returns the fixed human-readable message for a taxonomy error.
// Unknown errors collapse to the generic transport message so provider
// diagnostics never leak to the display layer.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyPrompt):
		return "Enter a prompt or attach a file before generating."
	case errors.Is(err, ErrUnsupportedCategory):
		return "The selected section is not supported."
	case errors.Is(err, ErrCredentialRequired):
		return "An API key must be selected for video generation. Select a key and press Generate again."
	case errors.Is(err, ErrInvalidCredential):
		return "The API key is not valid. Please check your settings."
	case errors.Is(err, ErrPermissionDenied):
		return "Video generation is not permitted for this API key. Please select a different key."
	case errors.Is(err, ErrMissingAsset):
		return "The video was not created or its file could not be found."
	default:
		return "An unexpected error occurred while generating content. Please try again later."
	}
}
