package authoring

import (
	"errors"
	"testing"
)

func TestMultipleChoice_SingleCorrectInvariant(t *testing.T) {
	s := NewSession("sess-1")
	it := s.Create(TypeMultipleChoice)
	ed := NewEditor(s, it)
	ans := ed.Answers()

	third, err := ans.AddOption()
	if err != nil {
		t.Fatalf("add option: %v", err)
	}

	// mark each option correct in turn; at most one may stay flagged
	for _, id := range []Identity{it.Options[0].ID, it.Options[1].ID, third.ID, it.Options[0].ID} {
		if err := ans.MarkCorrect(id); err != nil {
			t.Fatalf("mark correct: %v", err)
		}
		correct := 0
		for _, o := range ed.Draft().Options {
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			t.Fatalf("expected exactly 1 correct option, got %d", correct)
		}
	}
	// the last marked option is the one flagged
	d := ed.Draft()
	if !d.Options[0].IsCorrect {
		t.Fatalf("expected first option to end up correct")
	}
}

func TestMultipleChoice_MarkCorrectUnknownOption(t *testing.T) {
	s := NewSession("sess-1")
	it := s.Create(TypeMultipleChoice)
	ed := NewEditor(s, it)

	err := ed.Answers().MarkCorrect(NewLocalID())
	if !errors.Is(err, ErrOptionNotFound) {
		t.Fatalf("expected ErrOptionNotFound, got %v", err)
	}
}

func TestTrueFalse_OptionSetIsFixedAndStable(t *testing.T) {
	s := NewSession("sess-1")
	it := s.Create(TypeTrueFalse)
	ed := NewEditor(s, it)
	ans := ed.Answers()

	if _, err := ans.AddOption(); !errors.Is(err, ErrFixedOptionSet) {
		t.Fatalf("expected ErrFixedOptionSet on add, got %v", err)
	}
	if err := ans.RemoveOption(it.Options[0].ID); !errors.Is(err, ErrFixedOptionSet) {
		t.Fatalf("expected ErrFixedOptionSet on remove, got %v", err)
	}

	// toggle correctness both ways; ids and count never change
	for i := 0; i < 4; i++ {
		target := it.Options[i%2].ID
		if err := ans.MarkCorrect(target); err != nil {
			t.Fatalf("mark correct: %v", err)
		}
		d := ed.Draft()
		if len(d.Options) != 2 {
			t.Fatalf("true_false must always hold 2 options, got %d", len(d.Options))
		}
		if d.Options[0].ID.Value != TrueOptionValue || d.Options[1].ID.Value != FalseOptionValue {
			t.Fatalf("option ids drifted: %q/%q", d.Options[0].ID.Value, d.Options[1].ID.Value)
		}
	}

	if err := ans.SetOptionFeedback(it.Options[1].ID, "es", "Revisa el enunciado"); err != nil {
		t.Fatalf("set feedback: %v", err)
	}
	d := ed.Draft()
	if d.Options[1].Translations[0].Feedback != "Revisa el enunciado" {
		t.Fatalf("feedback not applied")
	}
}

func TestMultipleResponse_IndependentToggles(t *testing.T) {
	s := NewSession("sess-1")
	it := s.Create(TypeMultipleResponse)
	ed := NewEditor(s, it)
	ans := ed.Answers()

	if err := ans.MarkCorrect(it.Options[0].ID); err != nil {
		t.Fatalf("mark 0: %v", err)
	}
	if err := ans.MarkCorrect(it.Options[1].ID); err != nil {
		t.Fatalf("mark 1: %v", err)
	}
	d := ed.Draft()
	if !d.Options[0].IsCorrect || !d.Options[1].IsCorrect {
		t.Fatalf("multi-answer marks must not clear siblings")
	}

	if err := ans.ClearCorrect(it.Options[0].ID); err != nil {
		t.Fatalf("clear: %v", err)
	}
	d = ed.Draft()
	if d.Options[0].IsCorrect || !d.Options[1].IsCorrect {
		t.Fatalf("clear must affect only the targeted option")
	}
}

func TestOptionless_RejectsOptionOps(t *testing.T) {
	s := NewSession("sess-1")
	for _, typ := range []ItemType{TypeShortAnswer, TypeEssay} {
		it := s.Create(typ)
		ans := NewEditor(s, it).Answers()
		if _, err := ans.AddOption(); !errors.Is(err, ErrNoOptions) {
			t.Fatalf("%s: expected ErrNoOptions, got %v", typ, err)
		}
		if err := ans.MarkCorrect(NewLocalID()); !errors.Is(err, ErrNoOptions) {
			t.Fatalf("%s: expected ErrNoOptions, got %v", typ, err)
		}
	}
}

func TestFallback_RoundTripsDeclaredTypes(t *testing.T) {
	// matching/ordering/etc. have no concrete editor yet; their data must
	// still be editable generically and survive a commit untouched.
	s := NewSession("sess-1")
	it := s.Create(TypeMatching)
	ed := NewEditor(s, it)
	ans := ed.Answers()

	left, err := ans.AddOption()
	if err != nil {
		t.Fatalf("fallback add: %v", err)
	}
	if err := ans.SetOptionText(left.ID, "es", "Par A"); err != nil {
		t.Fatalf("fallback text: %v", err)
	}
	if err := ans.MarkCorrect(left.ID); err != nil {
		t.Fatalf("fallback mark: %v", err)
	}
	if err := ed.SetText(DefaultLocale.String(), "Empareja las columnas"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if errs := ed.Save(); len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	stored, _ := s.ItemByID(it.ID)
	if len(stored.Options) != 1 || !stored.Options[0].IsCorrect {
		t.Fatalf("fallback-edited options did not round-trip: %+v", stored.Options)
	}
}

func TestOptionText_CreatesLocaleEntryOnDemand(t *testing.T) {
	s := NewSession("sess-1")
	it := s.Create(TypeMultipleChoice)
	ans := NewEditor(s, it).Answers()

	if err := ans.SetOptionText(it.Options[0].ID, "en", "Lima"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := ans.SetOptionText(it.Options[0].ID, "EN", "Lima!"); err != nil {
		t.Fatalf("set text again: %v", err)
	}
}
