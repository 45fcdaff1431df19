// Package responses holds the canned reply table and the alias normalizer
// that maps free-text variants to canonical command keys.
package responses

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	mentionRe = regexp.MustCompile(`@[\w_]+`)
	commandRe = regexp.MustCompile(`^/(\w+)`)
	spacesRe  = regexp.MustCompile(`\s+`)
)

// Normalize derives the canonical lookup key from raw message text.
// Bot mentions are stripped anywhere in the text, commands are reduced to
// the delimiter plus their first word token, and everything else is
// lowercased with whitespace runs collapsed. Always returns a string,
// possibly empty.
func Normalize(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.TrimSpace(mentionRe.ReplaceAllString(t, ""))
	if m := commandRe.FindStringSubmatch(t); m != nil {
		return "/" + m[1]
	}
	return spacesRe.ReplaceAllString(t, " ")
}

// Table is the immutable canned reply table, indexed by canonical key.
type Table struct {
	replies map[string]string
	aliases map[string]string
}

// Load reads the reply definitions from a JSON file (key → reply text).
// The file is mandatory; the bot has nothing to say without it.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read responses: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse responses: %w", err)
	}
	return New(raw), nil
}

// New builds a Table from a key→reply map, case-normalizing the keys.
func New(replies map[string]string) *Table {
	normalized := make(map[string]string, len(replies))
	for k, v := range replies {
		normalized[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return &Table{replies: normalized, aliases: defaultAliases}
}

// Get looks up a canonical key verbatim.
func (t *Table) Get(key string) (string, bool) {
	r, ok := t.replies[key]
	return r, ok
}

// Reply resolves raw text to a canned reply. Resolution order: normalized
// key verbatim, then the key with the command delimiter stripped, then the
// alias table (preferring the delimiter form of the canonical key). A miss
// returns ok=false so the caller can fall through to the AI path.
func (t *Table) Reply(raw string) (string, bool) {
	k := Normalize(raw)
	if r, ok := t.replies[k]; ok {
		return r, true
	}
	if strings.HasPrefix(k, "/") {
		if r, ok := t.replies[k[1:]]; ok {
			return r, true
		}
	}
	if canon, ok := t.aliases[k]; ok {
		if r, ok := t.replies[canon]; ok {
			return r, true
		}
		if r, ok := t.replies[strings.TrimPrefix(canon, "/")]; ok {
			return r, true
		}
	}
	return "", false
}
