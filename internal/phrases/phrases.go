// internal/phrases/phrases.go
//
// Hangman phrase bank used to seed the puzzle catalogue.
//
// Responsibilities:
//   - Load phrases from PHRASES_FILE or fall back to the embedded YAML bank.
//   - Normalize and filter phrases with the import rules (Normalize, IsValid).
//   - Generate a fallback hint for phrases that ship without one (AutoHint).
//
// Sources (Init):
//  1. If PHRASES_FILE is set, read it as plain text, one phrase per line.
//     The category is the file's base name without extension.
//  2. Otherwise decode assets/phrases.yaml (categories → phrases + hints).
//
// Constraints:
//   • Phrases are uppercase A–Z, apostrophes and single spaces.
//   • 4–24 letters, at most 4 words, at most 1 apostrophe.
//   • Initialization is run once (sync.Once).

package phrases

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/robalobadob/playseed/assets"
)

// Entry is one importable phrase.
type Entry struct {
	Phrase   string
	Hint     string
	Category string
}

type bankFile struct {
	Categories []struct {
		Name    string `yaml:"name"`
		Phrases []struct {
			Phrase string `yaml:"phrase"`
			Hint   string `yaml:"hint"`
		} `yaml:"phrases"`
	} `yaml:"categories"`
}

var (
	initOnce   sync.Once
	entries    []Entry
	initialErr error
)

// Init loads the bank exactly once. path overrides the embedded bank when set.
// Returns an error if no valid phrase survives filtering.
func Init(path string) error {
	initOnce.Do(func() {
		entries, initialErr = Load(path)
	})
	return initialErr
}

// All returns the entries loaded by Init.
func All() []Entry { return entries }

// Load reads a bank without touching package state.
func Load(path string) ([]Entry, error) {
	var (
		out []Entry
		err error
	)
	if path != "" {
		out, err = readFile(path)
	} else {
		var raw []byte
		if raw, err = assets.PhraseBank(); err == nil {
			out, err = ParseYAML(raw)
		}
	}
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, errors.New("phrases: bank is empty")
	}
	return out, nil
}

func readFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	category := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseLines(category, f)
}

// ParseLines reads one phrase per line under category, keeping valid ones.
// Duplicate phrases collapse to the first occurrence.
func ParseLines(category string, r io.Reader) ([]Entry, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, Normalize(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	kept := lo.Uniq(lo.Filter(lines, func(p string, _ int) bool { return IsValid(p) }))
	return lo.Map(kept, func(p string, _ int) Entry {
		return Entry{Phrase: p, Category: category}
	}), nil
}

// ParseYAML decodes a categories → phrases document.
func ParseYAML(raw []byte) ([]Entry, error) {
	var doc bankFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("phrases: decode yaml: %w", err)
	}
	var out []Entry
	for _, c := range doc.Categories {
		for _, p := range c.Phrases {
			phrase := Normalize(p.Phrase)
			if !IsValid(phrase) {
				continue
			}
			out = append(out, Entry{Phrase: phrase, Hint: strings.TrimSpace(p.Hint), Category: c.Name})
		}
	}
	return lo.UniqBy(out, func(e Entry) string { return e.Phrase }), nil
}

// Stats returns the number of loaded phrases per category.
func Stats() map[string]int {
	return lo.CountValuesBy(entries, func(e Entry) string { return e.Category })
}
