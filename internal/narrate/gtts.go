package narrate

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

const (
	ttsEndpoint       = "https://translate.google.com/translate_tts"
	ttsRequestTimeout = 10 * time.Second

	// Google's endpoint rejects requests without a browser user agent.
	ttsUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// players are probed in order when no override is configured.
var players = []string{"mpv", "ffplay", "afplay", "mpg123"}

// GTTS narrates through Google Translate's free TTS endpoint. Audio is
// fetched once per phrase and cached as MP3, then handed to a local
// player; rate changes happen at playback time so one cached file serves
// every speed.
type GTTS struct {
	language string
	player   string
	cacheDir string
	endpoint string
	client   *http.Client
}

// NewGTTS builds the engine for one language. player overrides the
// playback command ("" probes mpv, ffplay, afplay, mpg123).
func NewGTTS(language, player string) *GTTS {
	if player == "" {
		for _, p := range players {
			if _, err := exec.LookPath(p); err == nil {
				player = p
				break
			}
		}
	}
	return &GTTS{
		language: language,
		player:   player,
		cacheDir: defaultCacheDir(),
		endpoint: ttsEndpoint,
		client:   &http.Client{Timeout: ttsRequestTimeout},
	}
}

func (g *GTTS) Name() string { return "gtts" }

// Available reports whether a playback command was found. Network
// reachability is only discovered on first use.
func (g *GTTS) Available() bool { return g.player != "" }

func (g *GTTS) Speak(ctx context.Context, text string, rate float64) (time.Duration, error) {
	if g.player == "" {
		return 0, fmt.Errorf("narrate: no audio player found (tried %v)", players)
	}

	path, err := g.ensureAudio(ctx, text)
	if err != nil {
		return 0, err
	}

	args := playerCommand(g.player, path, rate)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("narrate: play %s: %w", filepath.Base(path), err)
	}
	return time.Since(start), nil
}

// ensureAudio returns the cached MP3 for text, fetching it when absent.
func (g *GTTS) ensureAudio(ctx context.Context, text string) (string, error) {
	path := filepath.Join(g.cacheDir, g.cacheKey(text)+".mp3")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(g.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("narrate: create cache dir: %w", err)
	}
	if err := g.fetch(ctx, text, path); err != nil {
		return "", err
	}
	return path, nil
}

// fetch downloads the synthesized audio for text into path. The write
// goes through a temp file so a failed download never leaves a truncated
// MP3 in the cache.
func (g *GTTS) fetch(ctx context.Context, text, path string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", g.language)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("narrate: create request: %w", err)
	}
	req.Header.Set("User-Agent", ttsUserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("narrate: fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("narrate: fetch audio: unexpected status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tts-*")
	if err != nil {
		return fmt.Errorf("narrate: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("narrate: write audio: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("narrate: close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("narrate: cache audio: %w", err)
	}
	return nil
}

// cacheKey hashes text and language into a filesystem-safe name. Phrases
// carry arbitrary Unicode, so the text itself can't be the filename.
func (g *GTTS) cacheKey(text string) string {
	sum := sha256.Sum256([]byte(g.language + "\x00" + text))
	return fmt.Sprintf("%x", sum[:12])
}

// playerCommand builds the playback invocation for one player, applying
// the rate where the player supports it.
func playerCommand(player, path string, rate float64) []string {
	if rate <= 0 {
		rate = 1
	}
	switch filepath.Base(player) {
	case "mpv":
		return []string{player, "--no-terminal", "--really-quiet", fmt.Sprintf("--speed=%.2f", rate), path}
	case "ffplay":
		return []string{player, "-nodisp", "-autoexit", "-loglevel", "quiet", "-af", fmt.Sprintf("atempo=%.2f", clampTempo(rate)), path}
	case "afplay":
		return []string{player, "-r", fmt.Sprintf("%.2f", rate), path}
	default:
		// Unknown players get the file only; rate is dropped.
		return []string{player, path}
	}
}

// clampTempo keeps the rate inside ffmpeg's atempo range.
func clampTempo(rate float64) float64 {
	if rate < 0.5 {
		return 0.5
	}
	if rate > 2.0 {
		return 2.0
	}
	return rate
}

// defaultCacheDir resolves $XDG_CACHE_HOME/shadowbox/tts with a fallback
// under the home directory.
func defaultCacheDir() string {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "shadowbox", "tts")
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "shadowbox", "tts")
}
