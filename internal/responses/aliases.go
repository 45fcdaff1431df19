package responses

// defaultAliases maps free-text phrases and command variants to the
// canonical keys of the reply table. Static for the process lifetime.
var defaultAliases = map[string]string{
	"start":  "/start",
	"/start": "/start",

	"help":  "/help",
	"/help": "/help",

	"airdrop":   "/airdrop",
	"/airdrop":  "/airdrop",
	"giveaway":  "/airdrop",
	"geveaway":  "/airdrop", // common misspelling seen in chat
	"give away": "/airdrop",

	"presale":    "/presale",
	"/presale":   "/presale",
	"buy":        "/presale",
	"how to buy": "/presale",
	"price":      "/presale",

	"nft":  "/nft",
	"/nft": "/nft",

	"dao":  "/dao",
	"/dao": "/dao",

	"ca":       "/ca",
	"/ca":      "/ca",
	"contract": "/ca",

	"website":  "website",
	"/website": "website",
	"link":     "website",
}
