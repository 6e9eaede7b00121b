package classify

// Categories maps each known category to its document types.
// Exposed through the document_categories MCP tool.
var Categories = map[string][]string{
	"technical":   {"documentation", "manual", "guide", "reference", "api"},
	"business":    {"policy", "procedure", "compliance", "governance", "strategy"},
	"educational": {"tutorial", "course", "lesson", "training", "workshop"},
	"legal":       {"contract", "agreement", "terms", "privacy", "regulation"},
	"research":    {"paper", "study", "analysis", "report", "whitepaper"},
	"general":     {"misc", "other", "uncategorized"},
}

// DefaultRules returns the built-in rule set. Built-in rules assign no
// tags; tags come from config-supplied rules.
// Path-segment rules come before filename rules so directory layout wins
// over how an individual file happens to be named.
func DefaultRules() []Rule {
	return []Rule{
		{
			PathKeywords: []string{"aws", "cloud", "documentation", "docs"},
			Category:     "technical",
			DocType:      "documentation",
		},
		{
			PathKeywords: []string{"policy", "compliance", "governance"},
			Category:     "business",
			DocType:      "policy",
		},
		{
			PathKeywords: []string{"manual", "guide", "reference"},
			Category:     "technical",
			DocType:      "manual",
		},
		{
			PathKeywords: []string{"tutorial", "training", "course"},
			Category:     "educational",
			DocType:      "tutorial",
		},
		{
			PathKeywords: []string{"research", "paper", "study"},
			Category:     "research",
			DocType:      "paper",
		},
		{
			PathKeywords: []string{"legal", "contract", "terms"},
			Category:     "legal",
			DocType:      "contract",
		},
		{
			NameKeywords: []string{"wellarchitected", "well-architected", "framework"},
			Category:     "technical",
			DocType:      "documentation",
		},
		{
			NameKeywords: []string{"manual", "guide", "reference"},
			Category:     "technical",
			DocType:      "manual",
		},
		{
			NameKeywords: []string{"policy", "procedure"},
			Category:     "business",
			DocType:      "policy",
		},
	}
}
