package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lumilearn/lumilearn-authoring/internal/authoring"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad_ParsesTemplatesAndSkipsJunk(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mcq.yaml", `
type: multiple_choice
gradable: true
points: 2
difficulty: medium
text: "Elige la respuesta correcta"
options:
  - text: "Opción A"
    correct: true
  - text: "Opción B"
`)
	writeFile(t, dir, "broken.yaml", "::: not yaml at all {")
	writeFile(t, dir, "notes.txt", "ignored")
	writeFile(t, dir, "typeless.yaml", "points: 9")

	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if lib.Len() != 1 {
		t.Fatalf("expected 1 template, got %d", lib.Len())
	}
}

func TestLibrary_SeedFeedsSessionCreate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "mcq.yaml", `
type: multiple_choice
gradable: true
points: 3
text: "Pregunta sembrada"
options:
  - text: "Sí"
    correct: true
  - text: "No"
`)
	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	s := authoring.NewSession("sess-1", authoring.WithSeed(lib.Seed))
	it := s.Create(authoring.TypeMultipleChoice)
	if it.Points != 3 || it.Translations[0].Text != "Pregunta sembrada" {
		t.Fatalf("seeded item did not come from the template: %+v", it)
	}
	if len(it.Options) != 2 || !it.Options[0].IsCorrect {
		t.Fatalf("seeded options wrong: %+v", it.Options)
	}
	if !it.ID.IsLocal() || it.Order != 0 {
		t.Fatalf("session must still assign identity and order")
	}

	// untemplated types fall back to built-in defaults
	tf := s.Create(authoring.TypeTrueFalse)
	if len(tf.Options) != 2 || tf.Options[0].ID.Value != authoring.TrueOptionValue {
		t.Fatalf("fallback defaults not applied for true_false")
	}
}

func TestLibrary_SeedTrueFalseKeepsFixedOptionPair(t *testing.T) {
	dir := t.TempDir()
	// a template must not be able to change the option pair, whatever it declares
	writeFile(t, dir, "tf.yaml", `
type: true_false
gradable: true
points: 5
text: "¿La luna es un planeta?"
options:
  - text: "Sí"
  - text: "No"
  - text: "Tal vez"
`)
	lib, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	s := authoring.NewSession("sess-1", authoring.WithSeed(lib.Seed))
	it := s.Create(authoring.TypeTrueFalse)

	if it.Points != 5 || it.Translations[0].Text != "¿La luna es un planeta?" {
		t.Fatalf("template text and points must apply: %+v", it)
	}
	if len(it.Options) != 2 {
		t.Fatalf("true_false must keep exactly two options, got %d", len(it.Options))
	}
	if it.Options[0].ID.Value != authoring.TrueOptionValue ||
		it.Options[1].ID.Value != authoring.FalseOptionValue {
		t.Fatalf("true_false options must keep their well-known ids: %+v", it.Options)
	}

	// the fixed pair stays editable the normal way
	ed := authoring.NewEditor(s, it)
	if err := ed.Answers().MarkCorrect(it.Options[0].ID); err != nil {
		t.Fatalf("mark correct on fixed option: %v", err)
	}
}
