package authoring

// PreviewOption is the read-only projection of one answer option.
type PreviewOption struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// PreviewItem is the read-only projection of one item for author-facing
// preview. It is never persisted.
type PreviewItem struct {
	Number    int             `json:"number"` // 1-based display position
	Type      ItemType        `json:"type"`
	Prompt    string          `json:"prompt"`
	Hint      string          `json:"hint,omitempty"`
	Gradable  bool            `json:"gradable"`
	Points    float64         `json:"points,omitempty"`
	Required  bool            `json:"required"`
	Options   []PreviewOption `json:"options,omitempty"`
	Supported bool            `json:"supported"`
	Note      string          `json:"note,omitempty"`
}

// previewSupported lists the types with a real preview rendering; anything
// else gets a neutral placeholder instead of an error.
var previewSupported = map[ItemType]bool{
	TypeMultipleChoice:   true,
	TypeMultipleResponse: true,
	TypeTrueFalse:        true,
	TypeShortAnswer:      true,
	TypeEssay:            true,
}

// Preview projects the item list for the given locale. Pure: the input is
// read through copies and never mutated, and two calls with the same input
// produce the same output.
func Preview(items []Item, locale string) []PreviewItem {
	out := make([]PreviewItem, 0, len(items))
	for i, it := range items {
		out = append(out, previewOne(it, i+1, locale))
	}
	return out
}

func previewOne(it Item, number int, locale string) PreviewItem {
	p := PreviewItem{
		Number:   number,
		Type:     it.Type,
		Gradable: it.IsGradable,
		Required: it.IsRequired,
	}
	if it.IsGradable {
		p.Points = it.Points
	}
	if tr := it.Translation(locale); tr != nil {
		p.Prompt = tr.Text
		p.Hint = tr.Hint
	} else if tr := it.Translation(DefaultLocale.String()); tr != nil {
		p.Prompt = tr.Text
		p.Hint = tr.Hint
	}

	if !previewSupported[it.Type] {
		p.Note = "preview not supported yet for this question type"
		return p
	}
	p.Supported = true

	for _, o := range it.Options {
		po := PreviewOption{IsCorrect: o.IsCorrect}
		for _, tr := range o.Translations {
			if canonicalLocale(tr.Locale) == canonicalLocale(locale) {
				po.Text = tr.Text
				break
			}
		}
		if po.Text == "" {
			for _, tr := range o.Translations {
				if canonicalLocale(tr.Locale) == DefaultLocale.String() {
					po.Text = tr.Text
					break
				}
			}
		}
		p.Options = append(p.Options, po)
	}
	if it.Answer != nil && it.Answer.ManualGrading {
		p.Note = "graded manually by the reviewer"
	}
	return p
}
