package media

import (
	"encoding/binary"
	"fmt"
)

// wavHeaderSize is the canonical RIFF/WAVE header length for PCM data.
const wavHeaderSize = 44

// PCMToWAV wraps raw PCM bytes in a canonical 44-byte RIFF/WAVE header.
// The payload is copied verbatim after the header; layout follows the
// standard: chunk size = 36+dataSize, byte rate = sampleRate*blockAlign,
// block align = channels*bitsPerSample/8.
func PCMToWAV(pcm []byte, f Format) ([]byte, error) {
	if f.BlockAlign() == 0 || len(pcm)%f.BlockAlign() != 0 {
		return nil, ErrMalformedAudio
	}
	dataSize := len(pcm)
	out := make([]byte, wavHeaderSize+dataSize)

	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataSize))
	copy(out[8:12], "WAVE")

	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(out[22:24], uint16(f.Channels))
	binary.LittleEndian.PutUint32(out[24:28], uint32(f.SampleRate))
	binary.LittleEndian.PutUint32(out[28:32], uint32(f.ByteRate()))
	binary.LittleEndian.PutUint16(out[32:34], uint16(f.BlockAlign()))
	binary.LittleEndian.PutUint16(out[34:36], uint16(f.BitsPerSample))

	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))

	copy(out[wavHeaderSize:], pcm)
	return out, nil
}

// ParseWAV re-parses a WAV container produced by PCMToWAV, returning the
// declared format and the embedded PCM payload. Used by consumers that need
// the raw samples back and by the round-trip tests.
func ParseWAV(b []byte) (Format, []byte, error) {
	if len(b) < wavHeaderSize {
		return Format{}, nil, fmt.Errorf("media: wav too short: %d bytes", len(b))
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" || string(b[12:16]) != "fmt " {
		return Format{}, nil, fmt.Errorf("media: not a riff/wave container")
	}
	if audioFormat := binary.LittleEndian.Uint16(b[20:22]); audioFormat != 1 {
		return Format{}, nil, fmt.Errorf("media: unsupported wav audio format %d", audioFormat)
	}
	f := Format{
		Channels:      int(binary.LittleEndian.Uint16(b[22:24])),
		SampleRate:    int(binary.LittleEndian.Uint32(b[24:28])),
		BitsPerSample: int(binary.LittleEndian.Uint16(b[34:36])),
	}
	if string(b[36:40]) != "data" {
		return Format{}, nil, fmt.Errorf("media: missing wav data chunk")
	}
	dataSize := int(binary.LittleEndian.Uint32(b[40:44]))
	if dataSize != len(b)-wavHeaderSize {
		return Format{}, nil, fmt.Errorf("media: wav data size %d does not match payload %d", dataSize, len(b)-wavHeaderSize)
	}
	return f, b[wavHeaderSize:], nil
}
