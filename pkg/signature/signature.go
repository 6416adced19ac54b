// Package signature holds the byte-pattern rules used to guess the
// architecture and byte order of raw binaries.
package signature

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition is the on-disk form of a pattern-only rule.
type Definition struct {
	Name    string `json:"name" yaml:"name"`
	Arch    string `json:"arch" yaml:"arch"`
	Endian  string `json:"endian" yaml:"endian"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// Rule converts the definition into a Rule.
func (d Definition) Rule() (Rule, error) {
	arch, err := ParseArch(d.Arch)
	if err != nil {
		return Rule{}, fmt.Errorf("%s: %w", d.Name, err)
	}
	endian, err := ParseEndian(d.Endian)
	if err != nil {
		return Rule{}, fmt.Errorf("%s: %w", d.Name, err)
	}
	return Rule{
		Name:    d.Name,
		Kind:    Kind{Arch: arch, Endian: endian},
		Pattern: d.Pattern,
	}, nil
}

// Load reads rule definitions from a JSON or YAML file, or from every such
// file below a directory.
func Load(path string) ([]Rule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		return loadFile(path)
	}

	var rules []Rule
	if err := filepath.Walk(path, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !isRuleFile(path) {
			return nil
		}
		rs, err := loadFile(path)
		if err != nil {
			return err
		}
		rules = append(rules, rs...)
		return nil
	}); err != nil {
		return nil, err
	}

	return rules, nil
}

func isRuleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func loadFile(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var defs []Definition
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &defs)
	default:
		err = json.Unmarshal(data, &defs)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	rules := make([]Rule, 0, len(defs))
	for _, def := range defs {
		r, err := def.Rule()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidRule, path, err)
		}
		rules = append(rules, r)
	}

	return rules, nil
}
