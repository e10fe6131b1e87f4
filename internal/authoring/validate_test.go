package authoring

import (
	"strings"
	"testing"
)

func validItem(t ItemType) Item {
	it := Item{
		ID:         NewLocalID(),
		Type:       t,
		IsGradable: true,
		Points:     2,
		Translations: []Translation{
			{Locale: "es", Text: "¿Capital de Perú?"},
		},
	}
	if IsChoiceType(t) {
		it.Options = []Option{
			{ID: NewLocalID(), Order: 0, IsCorrect: true},
			{ID: NewLocalID(), Order: 1},
		}
	}
	return it
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Item)
		wantErr string // substring expected in one message; "" means valid
	}{
		{"valid multiple choice", func(*Item) {}, ""},
		{
			"missing default-locale text",
			func(it *Item) { it.Translations[0].Text = "   " },
			"default locale",
		},
		{
			"wrong locale only",
			func(it *Item) { it.Translations = []Translation{{Locale: "en", Text: "Capital of Peru?"}} },
			"default locale",
		},
		{
			"gradable with zero points",
			func(it *Item) { it.Points = 0 },
			"points",
		},
		{
			"not gradable ignores points",
			func(it *Item) { it.IsGradable = false; it.Points = 0 },
			"",
		},
		{
			"choice type without options",
			func(it *Item) { it.Options = nil },
			"option",
		},
		{
			"gradable choice without a correct option",
			func(it *Item) { it.Options[0].IsCorrect = false },
			"correct",
		},
		{
			"ungraded choice may lack a correct option",
			func(it *Item) {
				it.IsGradable = false
				it.Options[0].IsCorrect = false
			},
			"",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := validItem(TypeMultipleChoice)
			tc.mutate(&it)
			errs := Validate(it)
			if tc.wantErr == "" {
				if len(errs) != 0 {
					t.Fatalf("expected valid, got %v", errs)
				}
				return
			}
			found := false
			for _, e := range errs {
				if strings.Contains(e, tc.wantErr) {
					found = true
				}
			}
			if !found {
				t.Fatalf("expected a message containing %q, got %v", tc.wantErr, errs)
			}
		})
	}
}

func TestValidate_EssayNeedsNoOptions(t *testing.T) {
	it := validItem(TypeEssay)
	it.Options = nil
	if errs := Validate(it); len(errs) != 0 {
		t.Fatalf("essay without options must be valid, got %v", errs)
	}
}

func TestValidate_LocaleMatchIsCanonical(t *testing.T) {
	it := validItem(TypeEssay)
	it.Options = nil
	it.Translations[0].Locale = "ES"
	if errs := Validate(it); len(errs) != 0 {
		t.Fatalf("locale match must be case-insensitive, got %v", errs)
	}
}
