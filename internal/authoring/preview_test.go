package authoring

import (
	"reflect"
	"testing"
)

func TestPreview_ProjectsSupportedTypes(t *testing.T) {
	s := NewSession("sess-1")
	it := s.Create(TypeTrueFalse)
	ed := NewEditor(s, it)
	if err := ed.SetText("es", "¿La Tierra es plana?"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := ed.Answers().MarkCorrect(it.Options[1].ID); err != nil {
		t.Fatalf("mark correct: %v", err)
	}
	if errs := ed.Save(); len(errs) != 0 {
		t.Fatalf("save: %v", errs)
	}

	out := Preview(s.Items(), "es")
	if len(out) != 1 {
		t.Fatalf("expected 1 preview item, got %d", len(out))
	}
	p := out[0]
	if !p.Supported || p.Number != 1 || p.Prompt != "¿La Tierra es plana?" {
		t.Fatalf("unexpected projection: %+v", p)
	}
	if len(p.Options) != 2 || p.Options[0].Text != "Verdadero" || !p.Options[1].IsCorrect {
		t.Fatalf("unexpected option projection: %+v", p.Options)
	}
}

func TestPreview_UnknownTypeGetsPlaceholder(t *testing.T) {
	items := []Item{{
		ID:           NewLocalID(),
		Type:         TypeMatrix,
		Translations: []Translation{{Locale: "es", Text: "Rellena la matriz"}},
	}}
	out := Preview(items, "es")
	if out[0].Supported {
		t.Fatalf("matrix preview must be a placeholder")
	}
	if out[0].Note == "" {
		t.Fatalf("placeholder must carry an explanatory note")
	}
	if out[0].Prompt != "Rellena la matriz" {
		t.Fatalf("placeholder still shows the prompt")
	}
}

func TestPreview_FallsBackToDefaultLocale(t *testing.T) {
	items := []Item{{
		ID:           NewLocalID(),
		Type:         TypeEssay,
		Translations: []Translation{{Locale: "es", Text: "Redacta un ensayo"}},
	}}
	out := Preview(items, "en")
	if out[0].Prompt != "Redacta un ensayo" {
		t.Fatalf("expected default-locale fallback, got %q", out[0].Prompt)
	}
}

func TestPreview_DoesNotMutateInput(t *testing.T) {
	s := NewSession("sess-1")
	s.Create(TypeTrueFalse)
	s.Create(TypeMatrix)
	before := s.Items()

	_ = Preview(before, "es")
	_ = Preview(before, "en")

	if !reflect.DeepEqual(before, s.Items()) {
		t.Fatalf("preview must not mutate its input")
	}
}

func TestPreview_HidesPointsWhenNotGradable(t *testing.T) {
	items := []Item{{
		ID:           NewLocalID(),
		Type:         TypeEssay,
		Points:       5,
		Translations: []Translation{{Locale: "es", Text: "Opinión libre"}},
	}}
	out := Preview(items, "es")
	if out[0].Points != 0 {
		t.Fatalf("points are meaningless when not gradable")
	}
}
