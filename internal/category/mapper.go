// Package category maps transaction descriptions to spending categories
// using an ordered list of regular expression rules. Rules are evaluated in
// list order and the first match wins, so narrower rules must be registered
// before broader catch-alls that could shadow them.
package category

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/banktrace/banktrace/internal/transaction"
)

// InvalidPatternError reports a rule pattern that does not compile. The rule
// is not added and existing rules remain intact.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid category pattern %q: %s", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// Rule matches transaction descriptions to a category. Matching is a
// substring search, not a full-string match; the built-in patterns use word
// boundaries so "gas" does not match inside "gaslight".
type Rule struct {
	re            *regexp.Regexp
	pattern       string
	builtin       bool
	CategoryName  string
	Parent        string
	CaseSensitive bool
}

// Pattern returns the pattern text as supplied, without the
// case-insensitivity prefix compileRule injects.
func (r Rule) Pattern() string {
	return r.pattern
}

// Builtin reports whether the rule is part of the default set.
func (r Rule) Builtin() bool {
	return r.builtin
}

func (r Rule) Matches(s string) bool {
	return r.re.MatchString(s)
}

// Mapper holds the priority-ordered rule list. Build one per use with
// NewMapper; there is no shared default instance.
type Mapper struct {
	rules []Rule
}

// NewMapper returns a mapper seeded with the built-in rules. Custom rules
// added afterwards have lower priority than the defaults.
func NewMapper() *Mapper {
	m := &Mapper{rules: make([]Rule, 0, len(defaultRules))}
	for _, r := range defaultRules {
		// Built-in patterns are vetted at build time.
		m.rules = append(m.rules, Rule{
			re:           regexp.MustCompile(r.pattern),
			pattern:      r.pattern,
			builtin:      true,
			CategoryName: r.category,
			Parent:       r.parent,
		})
	}
	return m
}

// Classify maps a description to at most one category. Empty or
// whitespace-only input yields nil, as does a description no rule matches.
func (m *Mapper) Classify(description string) *transaction.Category {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil
	}

	for _, rule := range m.rules {
		if rule.Matches(description) {
			return &transaction.Category{
				Name:   rule.CategoryName,
				Parent: rule.Parent,
			}
		}
	}

	return nil
}

// AddRule compiles and appends a rule. Matching is case-insensitive unless
// caseSensitive is set.
func (m *Mapper) AddRule(pattern, categoryName, parent string, caseSensitive bool) error {
	rule, err := compileRule(pattern, categoryName, parent, caseSensitive)
	if err != nil {
		return err
	}
	m.rules = append(m.rules, rule)
	return nil
}

// InsertRule places a rule at the given priority index. An index outside the
// current bounds appends instead.
func (m *Mapper) InsertRule(priority int, pattern, categoryName, parent string, caseSensitive bool) error {
	rule, err := compileRule(pattern, categoryName, parent, caseSensitive)
	if err != nil {
		return err
	}
	if priority < 0 || priority >= len(m.rules) {
		m.rules = append(m.rules, rule)
		return nil
	}
	m.rules = append(m.rules[:priority], append([]Rule{rule}, m.rules[priority:]...)...)
	return nil
}

// RemoveRule drops every rule with the given pattern text and category name.
// It reports whether anything was removed.
func (m *Mapper) RemoveRule(pattern, categoryName string) bool {
	kept := m.rules[:0]
	for _, r := range m.rules {
		if r.Pattern() == pattern && r.CategoryName == categoryName {
			continue
		}
		kept = append(kept, r)
	}
	removed := len(kept) < len(m.rules)
	m.rules = kept
	return removed
}

// Rules returns the ordered rule list. Callers must not mutate it.
func (m *Mapper) Rules() []Rule {
	return m.rules
}

// Categories lists known category names grouped by parent. Rules without a
// parent group under "Other".
func (m *Mapper) Categories() map[string][]string {
	grouped := map[string][]string{}
	seen := map[string]bool{}

	for _, rule := range m.rules {
		parent := rule.Parent
		if parent == "" {
			parent = "Other"
		}
		if _, ok := grouped[parent]; !ok {
			grouped[parent] = []string{}
		}
		if !seen[rule.CategoryName] {
			grouped[parent] = append(grouped[parent], rule.CategoryName)
			seen[rule.CategoryName] = true
		}
	}

	return grouped
}

func compileRule(pattern, categoryName, parent string, caseSensitive bool) (Rule, error) {
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + pattern
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return Rule{}, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	return Rule{
		re:            re,
		pattern:       pattern,
		CategoryName:  categoryName,
		Parent:        parent,
		CaseSensitive: caseSensitive,
	}, nil
}
