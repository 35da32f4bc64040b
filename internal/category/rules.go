package category

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Rule import/export file shape:
// {"rules": [{"pattern", "category_name", "parent_category", "case_sensitive"}]}
type ruleJSON struct {
	Pattern        string  `json:"pattern"`
	CategoryName   string  `json:"category_name"`
	ParentCategory *string `json:"parent_category"`
	CaseSensitive  bool    `json:"case_sensitive"`
}

type rulesFile struct {
	Rules []ruleJSON `json:"rules"`
}

// ExportRules writes the mapper's full rule list, defaults included, in the
// interchange shape.
func (m *Mapper) ExportRules(w io.Writer) error {
	return m.exportRules(w, false)
}

func (m *Mapper) exportRules(w io.Writer, customOnly bool) error {
	out := rulesFile{Rules: make([]ruleJSON, 0, len(m.rules))}
	for _, rule := range m.rules {
		if customOnly && rule.builtin {
			continue
		}
		entry := ruleJSON{
			Pattern:       rule.Pattern(),
			CategoryName:  rule.CategoryName,
			CaseSensitive: rule.CaseSensitive,
		}
		if rule.Parent != "" {
			parent := rule.Parent
			entry.ParentCategory = &parent
		}
		out.Rules = append(out.Rules, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// ImportRules appends every valid rule from r. Rules whose patterns do not
// compile are skipped; their InvalidPatternErrors are joined into the
// returned error alongside the count of rules actually added.
func (m *Mapper) ImportRules(r io.Reader) (int, error) {
	var in rulesFile
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return 0, fmt.Errorf("decoding rules: %w", err)
	}

	added := 0
	var errs []error
	for _, entry := range in.Rules {
		parent := ""
		if entry.ParentCategory != nil {
			parent = *entry.ParentCategory
		}
		if err := m.AddRule(entry.Pattern, entry.CategoryName, parent, entry.CaseSensitive); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}

	return added, errors.Join(errs...)
}

// LoadRulesFile appends custom rules from path. A missing file means no
// custom rules and is not an error.
func (m *Mapper) LoadRulesFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	defer f.Close()

	return m.ImportRules(f)
}

// SaveRulesFile writes the custom rules to path. Built-in rules are seeded by
// NewMapper on every start and are never persisted, so loading the file back
// does not duplicate them.
func (m *Mapper) SaveRulesFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := m.exportRules(f, true); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
