package artifact

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soffai/studio/core"
	"github.com/soffai/studio/media"
)

var _ core.ArtifactStore = (*InMemoryStore)(nil)

func TestInMemoryStoreSaveGetIsolation(t *testing.T) {
	store := NewInMemoryStore()
	data := []byte("hello")
	require.NoError(t, store.Save("s1", "a1", data))

	data[0] = 'H'
	out, err := store.Get("s1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out), "stored bytes do not reflect caller mutation")

	out[0] = 'x'
	out2, err := store.Get("s1", "a1")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out2), "returned bytes are isolated")
}

func TestInMemoryStoreListAndDelete(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Save("s1", "a1", []byte("1")))
	require.NoError(t, store.Save("s1", "a2", []byte("2")))

	names, err := store.List("s1")
	require.NoError(t, err)
	assert.Len(t, names, 2)

	require.NoError(t, store.Delete("s1", "a1"))
	_, err = store.Get("s1", "a1")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err = store.List("s1")
	require.NoError(t, err)
	assert.Len(t, names, 1)
}

func TestInMemoryStoreUnknownSession(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get("nope", "a1")
	assert.ErrorIs(t, err, ErrNotFound)

	names, err := store.List("nope")
	require.NoError(t, err)
	assert.Empty(t, names)

	assert.ErrorIs(t, store.Delete("nope", "a1"), ErrNotFound)
}

func TestInMemoryStoreConcurrency(t *testing.T) {
	store := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("a%d", i%10)
			assert.NoError(t, store.Save("s1", name, []byte("data")))
			_, _ = store.List("s1")
		}()
	}
	wg.Wait()
	names, err := store.List("s1")
	require.NoError(t, err)
	assert.Len(t, names, 10)
}

func TestPackageText(t *testing.T) {
	file, err := Package(core.CategoryArticle, core.TextResult{Content: "# Title\n\nBody."})
	require.NoError(t, err)
	assert.Equal(t, "soffai-article.md", file.Name)
	assert.Equal(t, "text/markdown", file.ContentType)
	assert.Equal(t, []byte("# Title\n\nBody."), file.Data)
}

func TestPackageAudioWrapsWAV(t *testing.T) {
	pcm := []byte{0x01, 0x00, 0xFF, 0x7F}
	file, err := Package(core.CategorySpeech, core.AudioResult{PCM: pcm})
	require.NoError(t, err)
	assert.Equal(t, "soffai-speech.wav", file.Name)
	assert.Equal(t, "audio/wav", file.ContentType)

	format, payload, err := media.ParseWAV(file.Data)
	require.NoError(t, err)
	assert.Equal(t, media.DefaultFormat, format)
	assert.Equal(t, pcm, payload)
}

func TestPackageAudioOddLength(t *testing.T) {
	_, err := Package(core.CategorySpeech, core.AudioResult{PCM: []byte{0x01}})
	require.Error(t, err)
	assert.ErrorIs(t, err, media.ErrMalformedAudio)
}

func TestPackageVideo(t *testing.T) {
	file, err := Package(core.CategoryVideo, core.VideoResult{Data: []byte("mp4"), URI: "https://cdn.example/v.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "soffai-video.mp4", file.Name)
	assert.Equal(t, "video/mp4", file.ContentType)
	assert.Equal(t, []byte("mp4"), file.Data)
}
