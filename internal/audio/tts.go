package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

const ttsRequestTimeout = 10 * time.Second

// TTSNarrator narrates quiz text by fetching MP3 audio from the Google
// Translate text-to-speech endpoint (free, no API key needed) and
// caching it under audioDir. Generated files are served to clients via
// the static file handler; Speak blocks for the estimated playback
// duration so the session's narration gating works server-side too.
type TTSNarrator struct {
	audioDir string
	client   *http.Client
	enabled  bool
}

// NewTTSNarrator creates a narrator caching audio under audioDir.
// The narrator reports unavailable when the directory cannot be
// created, and sessions fall back to silent play.
func NewTTSNarrator(audioDir string) *TTSNarrator {
	enabled := true
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		enabled = false
	}
	return &TTSNarrator{
		audioDir: audioDir,
		client:   &http.Client{Timeout: ttsRequestTimeout},
		enabled:  enabled,
	}
}

// Available reports whether narration can be produced.
func (n *TTSNarrator) Available() bool {
	return n.enabled
}

// Speak generates (or reuses) the audio file for text and blocks for
// the estimated playback duration. Cancelling the context interrupts
// both the fetch and the playback wait.
func (n *TTSNarrator) Speak(ctx context.Context, text, languageTag string, rate float64) error {
	if !n.enabled {
		return nil
	}

	if _, err := n.EnsureAudioFile(ctx, text, languageTag); err != nil {
		return err
	}

	select {
	case <-time.After(estimateDuration(text, rate)):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// EnsureAudioFile fetches and caches the MP3 for text, returning the
// filename (not full path) under the audio directory.
func (n *TTSNarrator) EnsureAudioFile(ctx context.Context, text, languageTag string) (string, error) {
	filename := audioFilename(text, languageTag)
	path := filepath.Join(n.audioDir, filename)

	if _, err := os.Stat(path); err == nil {
		return filename, nil
	}

	if err := n.fetchGoogleTTS(ctx, text, languageTag, path); err != nil {
		return "", fmt.Errorf("failed to generate audio: %w", err)
	}

	return filename, nil
}

// fetchGoogleTTS downloads the synthesized speech for text to outputPath.
func (n *TTSNarrator) fetchGoogleTTS(ctx context.Context, text, languageTag, outputPath string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", languageTag)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	fullURL := "https://translate.google.com/translate_tts?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	// User agent is required by the endpoint
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, resp.Body); err != nil {
		os.Remove(outputPath)
		return fmt.Errorf("failed to write audio file: %w", err)
	}

	return nil
}

// audioFilename builds a stable cache filename for a phrase.
func audioFilename(text, languageTag string) string {
	sanitized := strings.ToLower(strings.TrimSpace(text))
	sanitized = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ':
			return '_'
		default:
			return -1
		}
	}, sanitized)
	if len(sanitized) > 60 {
		sanitized = sanitized[:60]
	}
	return fmt.Sprintf("tts_%s_%s.mp3", languageTag, sanitized)
}

// estimateDuration approximates how long the synthesized phrase takes
// to play. Roughly 12 characters per second at normal rate, with a
// floor so single words still register as speech.
func estimateDuration(text string, rate float64) time.Duration {
	if rate <= 0 {
		rate = 1.0
	}
	chars := utf8.RuneCountInString(text)
	d := time.Duration(float64(chars) / (12.0 * rate) * float64(time.Second))
	if d < 400*time.Millisecond {
		d = 400 * time.Millisecond
	}
	return d
}
