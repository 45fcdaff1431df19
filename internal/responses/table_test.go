package responses

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"plain keyword", "Presale", "presale"},
		{"command", "/help", "/help"},
		{"command with mention suffix", "/help@SomeBot", "/help"},
		{"command with args", "/ai what is the plan", "/ai"},
		{"mention stripped mid-text", "hey @DolphinBot how to buy", "hey how to buy"},
		{"whitespace collapsed", "  how   to \t buy ", "how to buy"},
		{"uppercase command", "/HELP", "/help"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func testTable() *Table {
	return New(map[string]string{
		"/start":   "Welcome!",
		"/help":    "Commands list",
		"/presale": "Presale info",
		"/airdrop": "Airdrop info",
		"/ca":      "CA not published yet",
		"website":  "https://dolphin.example",
	})
}

func TestReply_ResolutionOrder(t *testing.T) {
	table := testTable()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"verbatim key", "/presale", "Presale info", true},
		{"delimiter stripped", "/website", "https://dolphin.example", true},
		{"alias to command", "buy", "Presale info", true},
		{"multi-word alias", "how to buy", "Presale info", true},
		{"alias to bare keyword", "link", "https://dolphin.example", true},
		{"mention suffix on command", "/presale@DolphinBot", "Presale info", true},
		{"no match", "what is the weather", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := table.Reply(tt.raw)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Reply(%q) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

// Every alias must resolve to the same reply as its canonical key.
func TestReply_AliasMatchesCanonical(t *testing.T) {
	table := testTable()

	canonical, ok := table.Reply("/presale")
	if !ok {
		t.Fatal("canonical key /presale did not resolve")
	}
	for _, alias := range []string{"buy", "price", "how to buy", "presale"} {
		got, ok := table.Reply(alias)
		if !ok || got != canonical {
			t.Errorf("Reply(%q) = (%q, %v), want (%q, true)", alias, got, ok, canonical)
		}
	}
}

func TestNew_CaseNormalizesKeys(t *testing.T) {
	table := New(map[string]string{"/Help ": "Commands list"})
	if got, ok := table.Reply("/help"); !ok || got != "Commands list" {
		t.Errorf("Reply(/help) = (%q, %v), want (Commands list, true)", got, ok)
	}
}
