// Package templates loads per-type item seed templates from a directory of
// YAML files. A template overrides the built-in defaults used by
// Session.Create for its type.
package templates

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

// Template is the YAML shape of one seed file.
type Template struct {
	Type       string  `yaml:"type"`
	Gradable   bool    `yaml:"gradable"`
	Points     float64 `yaml:"points"`
	Required   bool    `yaml:"required"`
	Difficulty string  `yaml:"difficulty"`
	Category   string  `yaml:"category"`
	Text       string  `yaml:"text"`
	Hint       string  `yaml:"hint"`
	Options    []struct {
		Text    string `yaml:"text"`
		Correct bool   `yaml:"correct"`
	} `yaml:"options"`
}

// Library caches loaded templates keyed by item type.
type Library struct {
	mu        sync.RWMutex
	templates map[authoring.ItemType]Template
}

// Load walks dir and parses every .yaml/.yml file. Files that fail to
// parse or carry no type tag are skipped with a log line rather than
// failing the whole load.
func Load(dir string) (*Library, error) {
	l := &Library{templates: map[authoring.ItemType]Template{}}
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		if !strings.HasSuffix(path, ".yaml") && !strings.HasSuffix(path, ".yml") {
			return nil
		}
		return l.loadFile(path)
	})
	if err != nil {
		return nil, fmt.Errorf("loading templates from %s: %w", dir, err)
	}
	return l, nil
}

func (l *Library) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		log.Printf("templates: skipping invalid YAML %s: %v", path, err)
		return nil
	}
	if tpl.Type == "" {
		return nil
	}
	l.mu.Lock()
	l.templates[authoring.ItemType(tpl.Type)] = tpl
	l.mu.Unlock()
	return nil
}

// Len reports how many types have a template.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.templates)
}

// Seed satisfies authoring.SeedFunc: it materializes the template for a
// type into an item skeleton. Identity and order are left for the session
// to assign.
func (l *Library) Seed(t authoring.ItemType) (authoring.Item, bool) {
	l.mu.RLock()
	tpl, ok := l.templates[t]
	l.mu.RUnlock()
	if !ok {
		return authoring.Item{}, false
	}

	it := authoring.Item{
		Type:       t,
		IsGradable: tpl.Gradable,
		Points:     tpl.Points,
		IsRequired: tpl.Required,
		Difficulty: tpl.Difficulty,
		Category:   tpl.Category,
		Translations: []authoring.Translation{{
			Locale: authoring.DefaultLocale.String(),
			Text:   tpl.Text,
			Hint:   tpl.Hint,
		}},
	}
	for i, o := range tpl.Options {
		it.Options = append(it.Options, authoring.Option{
			ID:        authoring.NewLocalID(),
			Order:     i,
			IsCorrect: o.Correct,
			Translations: []authoring.OptionTranslation{{
				Locale: authoring.DefaultLocale.String(),
				Text:   o.Text,
			}},
		})
	}
	return it, true
}
