package core

// Result is the closed union of terminal generation outputs. Concrete result
// types implement the unexported isResult marker so exactly one variant can
// exist per value and external packages cannot extend the set.
type Result interface{ isResult() }

// Source is a citation attached to retrieval-augmented text output.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title,omitempty"`
}

// DisplayText returns the title, falling back to the URI when absent.
func (s Source) DisplayText() string {
	if s.Title != "" {
		return s.Title
	}
	return s.URI
}

// TextResult is generated text plus any grounding sources. Sources is empty
// for every category except Search.
type TextResult struct {
	Content string   `json:"content"`
	Sources []Source `json:"sources,omitempty"`
}

// isResult implements the Result interface for TextResult.
func (TextResult) isResult() {}

// AudioResult is synthesized speech as raw 16-bit little-endian PCM at
// 24 kHz mono. Containering (WAV) is left to the consumer via the media
// package.
type AudioResult struct {
	PCM []byte `json:"pcm"`
}

// isResult implements the Result interface for AudioResult.
func (AudioResult) isResult() {}

// VideoResult is a fetched video asset. Data holds the MP4 bytes; URI keeps
// the provider address the asset was fetched from.
type VideoResult struct {
	Data []byte `json:"data,omitempty"`
	URI  string `json:"uri,omitempty"`
}

// isResult implements the Result interface for VideoResult.
func (VideoResult) isResult() {}
