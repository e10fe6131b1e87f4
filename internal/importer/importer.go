// Package importer brings externally authored question batches into a
// session. The payload is validated against a JSON Schema before any item
// is accepted: a batch either imports whole or not at all, mirroring the
// all-or-nothing batch save.
package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

var ErrSchema = errors.New("import payload rejected by schema")

const itemBatchSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["type", "text"],
    "additionalProperties": false,
    "properties": {
      "type": {
        "type": "string",
        "enum": [
          "multiple_choice", "multiple_response", "true_false",
          "short_answer", "essay", "matching", "ordering",
          "fill_in_blank", "scale", "matrix"
        ]
      },
      "text": {"type": "string", "minLength": 1},
      "hint": {"type": "string"},
      "gradable": {"type": "boolean"},
      "points": {"type": "number", "minimum": 0},
      "required": {"type": "boolean"},
      "difficulty": {"type": "string"},
      "category": {"type": "string"},
      "tag": {"type": "string"},
      "options": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["text"],
          "additionalProperties": false,
          "properties": {
            "text": {"type": "string", "minLength": 1},
            "correct": {"type": "boolean"},
            "feedback": {"type": "string"}
          }
        }
      }
    }
  }
}`

var batchSchema = gojsonschema.NewStringLoader(itemBatchSchema)

type itemPayload struct {
	Type       string  `json:"type"`
	Text       string  `json:"text"`
	Hint       string  `json:"hint"`
	Gradable   bool    `json:"gradable"`
	Points     float64 `json:"points"`
	Required   bool    `json:"required"`
	Difficulty string  `json:"difficulty"`
	Category   string  `json:"category"`
	Tag        string  `json:"tag"`
	Options    []struct {
		Text     string `json:"text"`
		Correct  bool   `json:"correct"`
		Feedback string `json:"feedback"`
	} `json:"options"`
}

// Import validates data and appends every contained item to the session
// with fresh local identities. Returns the number of imported items.
func Import(session *authoring.Session, data []byte) (int, error) {
	result, err := gojsonschema.Validate(batchSchema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return 0, fmt.Errorf("validating import payload: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return 0, fmt.Errorf("%w: %s", ErrSchema, strings.Join(msgs, "; "))
	}

	var payloads []itemPayload
	if err := json.Unmarshal(data, &payloads); err != nil {
		return 0, fmt.Errorf("decoding import payload: %w", err)
	}

	locale := authoring.DefaultLocale.String()
	for _, p := range payloads {
		it := authoring.Item{
			ID:         authoring.NewLocalID(),
			Type:       authoring.ItemType(p.Type),
			IsGradable: p.Gradable,
			Points:     p.Points,
			IsRequired: p.Required,
			Difficulty: p.Difficulty,
			Category:   p.Category,
			Tag:        p.Tag,
			Translations: []authoring.Translation{
				{Locale: locale, Text: p.Text, Hint: p.Hint},
			},
		}
		for i, o := range p.Options {
			it.Options = append(it.Options, authoring.Option{
				ID:        authoring.NewLocalID(),
				Order:     i,
				IsCorrect: o.Correct,
				Translations: []authoring.OptionTranslation{
					{Locale: locale, Text: o.Text, Feedback: o.Feedback},
				},
			})
		}
		session.Update(it)
	}
	return len(payloads), nil
}
