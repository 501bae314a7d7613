package ai

// KeywordCategories defines the valid categories for extracted keywords.
// These categories drive how the query synthesizer groups terms.
var KeywordCategories = []string{
	"role",
	"skill",
	"qualification",
	"other",
}

// PlaceholderAPIKey is the sentinel API key value used by callers and
// tests when no real credential is configured. Extractors seeing this key
// (or an empty key) must fall back to deterministic offline extraction
// rather than calling the remote service.
const PlaceholderAPIKey = "mock-api-key"
