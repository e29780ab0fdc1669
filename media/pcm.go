package media

import "encoding/binary"

// Format describes raw PCM audio parameters.
type Format struct {
	SampleRate    int
	Channels      int
	BitsPerSample int
}

// DefaultFormat matches the provider's speech output: 24 kHz mono 16-bit.
var DefaultFormat = Format{SampleRate: 24000, Channels: 1, BitsPerSample: 16}

// BlockAlign returns the byte size of one sample frame.
func (f Format) BlockAlign() int { return f.Channels * f.BitsPerSample / 8 }

// ByteRate returns the byte throughput per second of audio.
func (f Format) ByteRate() int { return f.SampleRate * f.BlockAlign() }

// PCM16ToSamples converts raw 16-bit little-endian signed PCM into normalized
// float samples in [-1, 1). An odd-length buffer fails with
// ErrMalformedAudio; the trailing byte is never silently dropped.
func PCM16ToSamples(pcm []byte) ([]float32, error) {
	if len(pcm)%2 != 0 {
		return nil, ErrMalformedAudio
	}
	samples := make([]float32, len(pcm)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(pcm[2*i:]))
		samples[i] = float32(s) / 32768.0
	}
	return samples, nil
}
