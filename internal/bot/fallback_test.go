package bot

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nextlevelbuilder/dolphbot/internal/providers"
	"github.com/nextlevelbuilder/dolphbot/internal/updates"
)

// fakeProvider returns a fixed response or error.
type fakeProvider struct {
	resp    *providers.ChatResponse
	err     error
	lastReq providers.ChatRequest
}

func (f *fakeProvider) Chat(_ context.Context, req providers.ChatRequest) (*providers.ChatResponse, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeProvider) DefaultModel() string { return "fake-model" }
func (f *fakeProvider) Name() string         { return "fake" }

func testStore(t *testing.T) *updates.Store {
	t.Helper()
	return updates.Open(filepath.Join(t.TempDir(), "updates.json"))
}

func TestGateway_DisabledReturnsEmpty(t *testing.T) {
	g := NewGateway(nil, "", testStore(t), GatewayConfig{})

	text, err := g.Generate(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Generate() error = %v, want nil", err)
	}
	if text != "" {
		t.Errorf("Generate() = %q, want empty", text)
	}
}

func TestGateway_GenerateTrimsContent(t *testing.T) {
	p := &fakeProvider{resp: &providers.ChatResponse{Content: "  answer \n"}}
	g := NewGateway(p, "", testStore(t), GatewayConfig{Model: "gpt-4o-mini"})

	text, err := g.Generate(context.Background(), "question")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if text != "answer" {
		t.Errorf("Generate() = %q, want %q", text, "answer")
	}
}

func TestGateway_ProviderErrorIsInspectable(t *testing.T) {
	httpErr := &providers.HTTPError{Status: 429, Body: "rate limited"}
	p := &fakeProvider{err: httpErr}
	g := NewGateway(p, "", testStore(t), GatewayConfig{})

	_, err := g.Generate(context.Background(), "question")
	if err == nil {
		t.Fatal("Generate() error = nil, want wrapped HTTPError")
	}
	var got *providers.HTTPError
	if !errors.As(err, &got) || got.Status != 429 {
		t.Errorf("error %v does not unwrap to HTTPError 429", err)
	}
}

func TestGateway_SystemContextContainsProfileAndAnnouncements(t *testing.T) {
	store := testStore(t)
	store.Ingest("Older news", 1700000000, 1) // 2023-11-14 22:13:20 UTC
	store.Ingest("Presale starts Monday", 1700003600, 1)

	p := &fakeProvider{resp: &providers.ChatResponse{Content: "ok"}}
	g := NewGateway(p, "Project: Dolphin Solana\nChain: Solana", store, GatewayConfig{})

	if _, err := g.Generate(context.Background(), "when is the presale?"); err != nil {
		t.Fatal(err)
	}

	if len(p.lastReq.Messages) != 2 || p.lastReq.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", p.lastReq.Messages)
	}
	sys := p.lastReq.Messages[0].Content

	if !strings.Contains(sys, "Project: Dolphin Solana") {
		t.Error("system context missing profile block")
	}
	if !strings.Contains(sys, "- [2023-11-14 23:13 UTC] Presale starts Monday") {
		t.Errorf("system context missing formatted announcement, got:\n%s", sys)
	}
	// Newest first.
	newest := strings.Index(sys, "Presale starts Monday")
	older := strings.Index(sys, "Older news")
	if newest < 0 || older < 0 || newest > older {
		t.Error("announcements are not newest-first")
	}
}

func TestGateway_SystemContextPlaceholderWhenNoAnnouncements(t *testing.T) {
	p := &fakeProvider{resp: &providers.ChatResponse{Content: "ok"}}
	g := NewGateway(p, "", testStore(t), GatewayConfig{})

	if _, err := g.Generate(context.Background(), "hi"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(p.lastReq.Messages[0].Content, "- (none)") {
		t.Error("system context missing (none) placeholder")
	}
}
