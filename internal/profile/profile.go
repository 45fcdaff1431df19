// Package profile loads the static project knowledge document and flattens
// it into a context string for AI grounding.
package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// FlexString accepts both "5%" and 5 in JSON.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// Profile is the static project fact sheet. Immutable after load.
type Profile struct {
	ProjectName string     `json:"project_name"`
	Chain       string     `json:"chain"`
	Mission     string     `json:"mission"`
	Supply      FlexString `json:"supply"`
	Burn        FlexString `json:"burn"`
	Presale     Presale    `json:"presale"`
	NFT         NFT        `json:"nft"`
	DAO         DAO        `json:"dao"`
	Links       Links      `json:"links"`
	Contract    Contract   `json:"contract"`
	Safety      []string   `json:"safety"`
}

type Presale struct {
	Date            string     `json:"date"`
	Platform        string     `json:"platform"`
	ReservedPercent FlexString `json:"reserved_percent"`
}

type NFT struct {
	Vision  string   `json:"vision"`
	Utility []string `json:"utility"`
}

type DAO struct {
	Goal string `json:"goal"`
}

type Links struct {
	Website      string `json:"website"`
	X            string `json:"x"`
	TelegramChat string `json:"telegram_chat"`
	PresaleList  string `json:"presale_list"`
}

type Contract struct {
	CAStatus string `json:"ca_status"`
}

// Load reads the profile document. A missing or unreadable file degrades to
// an empty profile; it is never fatal.
func Load(path string) *Profile {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("read project profile failed", "path", path, "error", err)
		}
		return nil
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("parse project profile failed", "path", path, "error", err)
		return nil
	}
	return &p
}

// Context flattens the profile into the grounding block handed to the AI
// system prompt. Empty profile → empty string.
func (p *Profile) Context() string {
	if p == nil || p.empty() {
		return ""
	}

	name := p.ProjectName
	if name == "" {
		name = "Dolphin Solana"
	}
	chain := p.Chain
	if chain == "" {
		chain = "Solana"
	}

	parts := []string{
		fmt.Sprintf("Project: %s", name),
		fmt.Sprintf("Chain: %s", chain),
		fmt.Sprintf("Mission: %s", p.Mission),
		fmt.Sprintf("Supply: %s, Burn: %s", p.Supply, p.Burn),
		fmt.Sprintf("Presale: date=%s, platform=%s, reserved=%s",
			p.Presale.Date, p.Presale.Platform, p.Presale.ReservedPercent),
		fmt.Sprintf("NFT: vision=%s, utility=%s", p.NFT.Vision, strings.Join(p.NFT.Utility, ", ")),
		fmt.Sprintf("DAO: %s", p.DAO.Goal),
		fmt.Sprintf("Official Links: website=%s, X=%s, TG(chat)=%s, PresaleList=%s",
			p.Links.Website, p.Links.X, p.Links.TelegramChat, p.Links.PresaleList),
		fmt.Sprintf("Contract: %s", p.Contract.CAStatus),
	}
	if len(p.Safety) > 0 {
		parts = append(parts, "Safety: "+strings.Join(p.Safety, " | "))
	}
	return strings.Join(parts, "\n")
}

func (p *Profile) empty() bool {
	return p.ProjectName == "" && p.Chain == "" && p.Mission == "" &&
		p.Supply == "" && p.Burn == "" &&
		p.Presale == (Presale{}) && p.DAO == (DAO{}) &&
		p.Links == (Links{}) && p.Contract == (Contract{}) &&
		p.NFT.Vision == "" && len(p.NFT.Utility) == 0 && len(p.Safety) == 0
}
