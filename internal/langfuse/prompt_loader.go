package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Prompt sources.
const (
	SourceLangfuse = "langfuse"
	SourceFile     = "file"
)

const promptFetchTimeout = 5 * time.Second

// ErrNoPrompt means neither Langfuse nor a local file provided a prompt.
var ErrNoPrompt = errors.New("no prompt available")

// PromptLoaderConfig names the managed prompt and the local file that
// mirrors it.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	// SavePath caches the last fetched prompt and is read when Langfuse
	// cannot be reached.
	SavePath string
}

func (c PromptLoaderConfig) remote() bool {
	return c.PromptName != "" && c.BaseURL != "" && c.PublicKey != "" && c.SecretKey != ""
}

// Prompt is a loaded system prompt.
type Prompt struct {
	Text    string
	Version int
	Source  string
}

// LoadPrompt fetches the managed prompt and mirrors it to SavePath. When
// the fetch is not configured or fails, the mirrored copy is used.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig, logger *zap.Logger) (Prompt, error) {
	if cfg.remote() {
		p, err := fetchPrompt(ctx, cfg)
		if err == nil {
			if err := mirrorPrompt(cfg.SavePath, p.Text); err != nil {
				logger.Warn("failed to mirror prompt locally", zap.String("path", cfg.SavePath), zap.Error(err))
			}
			logger.Info("loaded prompt", zap.String("prompt", cfg.PromptName), zap.Int("version", p.Version))
			return p, nil
		}
		logger.Warn("prompt fetch failed, using local copy", zap.String("prompt", cfg.PromptName), zap.Error(err))
	}

	if cfg.SavePath == "" {
		return Prompt{}, ErrNoPrompt
	}
	data, err := os.ReadFile(cfg.SavePath)
	if err != nil {
		return Prompt{}, fmt.Errorf("%w: read %s: %v", ErrNoPrompt, cfg.SavePath, err)
	}
	return Prompt{Text: string(data), Source: SourceFile}, nil
}

type promptResponse struct {
	Type    string          `json:"type"`
	Version int             `json:"version"`
	Prompt  json.RawMessage `json:"prompt"`
}

type chatMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig) (Prompt, error) {
	endpoint, err := url.JoinPath(cfg.BaseURL, "api/public/v2/prompts", cfg.PromptName)
	if err != nil {
		return Prompt{}, fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	if cfg.PromptLabel != "" {
		endpoint += "?" + url.Values{"label": {cfg.PromptLabel}}.Encode()
	}

	ctx, cancel := context.WithTimeout(ctx, promptFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Prompt{}, fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Prompt{}, fmt.Errorf("call prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Prompt{}, fmt.Errorf("prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pr promptResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Prompt{}, fmt.Errorf("decode prompt response: %w", err)
	}
	text, err := pr.text()
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{Text: text, Version: pr.Version, Source: SourceLangfuse}, nil
}

// text returns a text prompt as is and flattens a chat prompt into
// "ROLE: content" blocks. Placeholders become {{name}}.
func (pr promptResponse) text() (string, error) {
	switch pr.Type {
	case "", "text":
		var s string
		if err := json.Unmarshal(pr.Prompt, &s); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return s, nil
	case "chat":
		var msgs []chatMessage
		if err := json.Unmarshal(pr.Prompt, &msgs); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		blocks := make([]string, 0, len(msgs))
		for _, m := range msgs {
			content := m.Content
			if m.Type == "placeholder" {
				if m.Name == "" {
					continue
				}
				content = "{{" + m.Name + "}}"
			}
			if content == "" {
				continue
			}
			role := m.Role
			if role == "" {
				role = "message"
			}
			blocks = append(blocks, strings.ToUpper(role)+": "+content)
		}
		return strings.Join(blocks, "\n\n"), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", pr.Type)
	}
}

// mirrorPrompt replaces the file at path atomically.
func mirrorPrompt(path, text string) error {
	if path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".prompt-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
