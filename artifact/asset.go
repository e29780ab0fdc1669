package artifact

import (
	"fmt"

	"github.com/soffai/studio/core"
	"github.com/soffai/studio/media"
)

// File is a downloadable rendition of a generation result: a suggested
// filename, the content type and the packaged bytes.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Package turns a terminal result into its download file. Audio is wrapped
// into a WAV container at the synthesis format, video is passed through as
// MP4, text is exported as Markdown. The filename embeds the category, e.g.
// "soffai-speech.wav".
func Package(category core.Category, result core.Result) (*File, error) {
	switch r := result.(type) {
	case core.TextResult:
		return &File{
			Name:        fileName(category, "md"),
			ContentType: "text/markdown",
			Data:        []byte(r.Content),
		}, nil
	case core.AudioResult:
		wav, err := media.PCMToWAV(r.PCM, media.DefaultFormat)
		if err != nil {
			return nil, fmt.Errorf("package audio: %w", err)
		}
		return &File{
			Name:        fileName(category, "wav"),
			ContentType: "audio/wav",
			Data:        wav,
		}, nil
	case core.VideoResult:
		return &File{
			Name:        fileName(category, "mp4"),
			ContentType: "video/mp4",
			Data:        r.Data,
		}, nil
	default:
		return nil, fmt.Errorf("unpackageable result type %T", result)
	}
}

func fileName(category core.Category, ext string) string {
	return fmt.Sprintf("soffai-%s.%s", string(category), ext)
}
