// Package classify assigns (category, document type, tags) to a document
// from its relative path.
//
// Classification is a pure function of the path and the rule set: the same
// path always yields the same result, which the sync engine relies on for
// idempotent re-ingestion.
package classify

import (
	"strings"

	"github.com/opskit/awsmcp/internal/config"
)

// Classification is the derived (category, doc type, tags) triple.
// It is recomputed on every ingestion, never stored independently.
type Classification struct {
	Category string
	DocType  string
	Tags     []string
}

// Rule matches on path-segment keywords or filename keywords.
type Rule struct {
	// PathKeywords match whole lowercased path segments (directory or file
	// name components). Any single match fires the rule.
	PathKeywords []string
	// NameKeywords match as substrings of the lowercased filename.
	NameKeywords []string

	Category string
	DocType  string
	Tags     []string
}

// Classifier evaluates an ordered rule list; first match wins.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier with the given rules. Nil or empty rules fall
// back to DefaultRules.
func New(rules []Rule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Classifier{rules: rules}
}

// FromConfig builds a Classifier from config rules, falling back to the
// built-in set when the config has none.
func FromConfig(rules []config.RuleConfig) *Classifier {
	converted := make([]Rule, 0, len(rules))
	for _, r := range rules {
		converted = append(converted, Rule{
			PathKeywords: r.PathKeywords,
			NameKeywords: r.NameKeywords,
			Category:     r.Category,
			DocType:      r.DocType,
			Tags:         r.Tags,
		})
	}
	return New(converted)
}

// Classify returns the classification for a relative path.
// Rules are evaluated in order: all path-keyword rules are matched against
// the path segments, then name-keyword rules against the filename. No match
// yields ("general", "uncategorized", nil).
func (c *Classifier) Classify(relPath string) Classification {
	lower := strings.ToLower(relPath)
	segments := strings.FieldsFunc(lower, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	segmentSet := make(map[string]bool, len(segments))
	for _, s := range segments {
		segmentSet[s] = true
	}
	name := ""
	if len(segments) > 0 {
		name = segments[len(segments)-1]
	}

	for _, rule := range c.rules {
		if matchesSegments(rule.PathKeywords, segmentSet) || matchesName(rule.NameKeywords, name) {
			return Classification{
				Category: rule.Category,
				DocType:  rule.DocType,
				// Copy so callers cannot mutate the rule set.
				Tags: append([]string(nil), rule.Tags...),
			}
		}
	}

	return Classification{Category: "general", DocType: "uncategorized"}
}

func matchesSegments(keywords []string, segments map[string]bool) bool {
	for _, kw := range keywords {
		if segments[kw] {
			return true
		}
	}
	return false
}

func matchesName(keywords []string, name string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(name, kw) {
			return true
		}
	}
	return false
}
