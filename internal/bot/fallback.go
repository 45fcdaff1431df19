package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nextlevelbuilder/dolphbot/internal/providers"
	"github.com/nextlevelbuilder/dolphbot/internal/updates"
)

// recentAnnouncements is how many stored announcements are fed into the AI
// grounding context, newest first.
const recentAnnouncements = 5

const systemPreamble = "You are Dolphin AI, assistant for the Dolphin Solana project.\n" +
	"Always reply in the same language the user writes in.\n" +
	"Use the following project profile and recent announcements as ground truth; " +
	"if the user asks for the contract address, remind them it's not published until the presale date. " +
	"Be concise, friendly, and avoid financial advice. Never ask for private keys/seed phrases.\n\n"

// GatewayConfig tunes the completion request.
type GatewayConfig struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Gateway produces AI fallback replies grounded in the project profile and
// the most recent channel announcements. A nil provider means the feature
// was not configured at startup and stays disabled for the process lifetime.
type Gateway struct {
	provider   providers.Provider
	profileCtx string
	store      *updates.Store
	cfg        GatewayConfig
}

// NewGateway wires the fallback gateway. provider may be nil (AI disabled).
func NewGateway(provider providers.Provider, profileCtx string, store *updates.Store, cfg GatewayConfig) *Gateway {
	return &Gateway{
		provider:   provider,
		profileCtx: profileCtx,
		store:      store,
		cfg:        cfg,
	}
}

// Enabled reports whether the AI backend was configured at startup.
func (g *Gateway) Enabled() bool {
	return g != nil && g.provider != nil
}

// Generate issues one completion request for the user prompt. Disabled
// gateway → empty text, nil error. A provider failure is returned to the
// caller, which maps it to the fixed apology reply; the underlying error
// (timeout, providers.HTTPError, malformed response) stays inspectable.
func (g *Gateway) Generate(ctx context.Context, prompt string) (string, error) {
	if !g.Enabled() {
		return "", nil
	}

	resp, err := g.provider.Chat(ctx, providers.ChatRequest{
		Model:       g.cfg.Model,
		Temperature: g.cfg.Temperature,
		MaxTokens:   g.cfg.MaxTokens,
		Messages: []providers.Message{
			{Role: "system", Content: g.systemContext()},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("ai completion: %w", err)
	}
	return strings.TrimSpace(resp.Content), nil
}

// systemContext concatenates the persona preamble, the flattened project
// profile and the recent announcement snippet.
func (g *Gateway) systemContext() string {
	snippet := g.announcementSnippet()
	if snippet == "" {
		snippet = "- (none)"
	}
	return systemPreamble +
		"== PROJECT PROFILE ==\n" + g.profileCtx + "\n" +
		"== RECENT ANNOUNCEMENTS (latest first) ==\n" + snippet + "\n" +
		"== END CONTEXT =="
}

func (g *Gateway) announcementSnippet() string {
	items := g.store.Recent(recentAnnouncements)
	lines := make([]string, 0, len(items))
	for _, it := range items {
		ts := time.Unix(it.TS, 0).UTC().Format("2006-01-02 15:04")
		lines = append(lines, fmt.Sprintf("- [%s UTC] %s", ts, it.Text))
	}
	return strings.Join(lines, "\n")
}
