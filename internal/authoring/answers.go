package authoring

import (
	"errors"
	"fmt"
)

var (
	ErrOptionNotFound = errors.New("option not found")
	ErrFixedOptionSet = errors.New("option set is fixed for this type")
	ErrNoOptions      = errors.New("type has no answer options")
)

// AnswerEditor owns the shape of the options sub-structure for one item
// type. Editors mutate the draft item handed to them by the Item Editor;
// they never reach into the session. Types without a concrete editor get
// the fallback, which round-trips their data without imposing a shape.
type AnswerEditor interface {
	// MarkCorrect flags the option with that id as correct. Type-specific:
	// single-answer types clear the flag on all siblings, multi-answer
	// types toggle independently.
	MarkCorrect(id Identity) error
	// ClearCorrect removes the correct flag from the option with that id.
	ClearCorrect(id Identity) error
	// AddOption appends a blank option; refused by fixed-set types.
	AddOption() (Option, error)
	// RemoveOption deletes an option and renumbers the rest; refused by
	// fixed-set types.
	RemoveOption(id Identity) error
	// SetOptionText replaces the option text for an existing locale entry,
	// creating the entry when absent (options, unlike items, are not
	// pre-seeded for every locale).
	SetOptionText(id Identity, locale, text string) error
	// SetOptionFeedback does the same for the feedback field.
	SetOptionFeedback(id Identity, locale, feedback string) error
}

type answerEditorFunc func(it *Item) AnswerEditor

var answerEditors = map[ItemType]answerEditorFunc{
	TypeMultipleChoice:   func(it *Item) AnswerEditor { return &singleCorrectEditor{it} },
	TypeTrueFalse:        func(it *Item) AnswerEditor { return &trueFalseEditor{it} },
	TypeMultipleResponse: func(it *Item) AnswerEditor { return &multiCorrectEditor{it} },
	TypeShortAnswer:      func(it *Item) AnswerEditor { return optionlessEditor{} },
	TypeEssay:            func(it *Item) AnswerEditor { return optionlessEditor{} },
}

// AnswerEditorFor returns the editor registered for the item's type, or
// the fallback when none is registered.
func AnswerEditorFor(it *Item) AnswerEditor {
	if mk, ok := answerEditors[it.Type]; ok {
		return mk(it)
	}
	return &fallbackEditor{it}
}

// --- shared option plumbing ---

type optionOps struct{ it *Item }

func (b optionOps) find(id Identity) (*Option, error) {
	o := b.it.OptionByID(id)
	if o == nil {
		return nil, fmt.Errorf("%w: %s", ErrOptionNotFound, id.Value)
	}
	return o, nil
}

func (b optionOps) add() Option {
	o := Option{
		ID:           NewLocalID(),
		Order:        len(b.it.Options),
		Translations: []OptionTranslation{{Locale: DefaultLocale.String()}},
	}
	b.it.Options = append(b.it.Options, o)
	return o
}

func (b optionOps) remove(id Identity) error {
	for i := range b.it.Options {
		if b.it.Options[i].ID.Equal(id) {
			b.it.Options = append(b.it.Options[:i], b.it.Options[i+1:]...)
			for j := range b.it.Options {
				b.it.Options[j].Order = j
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrOptionNotFound, id.Value)
}

func (b optionOps) setText(id Identity, locale, text string) error {
	o, err := b.find(id)
	if err != nil {
		return err
	}
	setOptionLocale(o, locale, func(tr *OptionTranslation) { tr.Text = text })
	return nil
}

func (b optionOps) setFeedback(id Identity, locale, feedback string) error {
	o, err := b.find(id)
	if err != nil {
		return err
	}
	setOptionLocale(o, locale, func(tr *OptionTranslation) { tr.Feedback = feedback })
	return nil
}

func setOptionLocale(o *Option, locale string, apply func(*OptionTranslation)) {
	want := canonicalLocale(locale)
	for i := range o.Translations {
		if canonicalLocale(o.Translations[i].Locale) == want {
			apply(&o.Translations[i])
			return
		}
	}
	tr := OptionTranslation{Locale: locale}
	apply(&tr)
	o.Translations = append(o.Translations, tr)
}

// --- multiple_choice: exactly one correct at a time ---

type singleCorrectEditor struct{ it *Item }

func (e *singleCorrectEditor) MarkCorrect(id Identity) error {
	ops := optionOps{e.it}
	if _, err := ops.find(id); err != nil {
		return err
	}
	// mutual exclusion, not a toggle: siblings are cleared every time
	for i := range e.it.Options {
		e.it.Options[i].IsCorrect = e.it.Options[i].ID.Equal(id)
	}
	return nil
}

func (e *singleCorrectEditor) ClearCorrect(id Identity) error {
	o, err := optionOps{e.it}.find(id)
	if err != nil {
		return err
	}
	o.IsCorrect = false
	return nil
}

func (e *singleCorrectEditor) AddOption() (Option, error) {
	return optionOps{e.it}.add(), nil
}

func (e *singleCorrectEditor) RemoveOption(id Identity) error {
	return optionOps{e.it}.remove(id)
}

func (e *singleCorrectEditor) SetOptionText(id Identity, locale, text string) error {
	return optionOps{e.it}.setText(id, locale, text)
}

func (e *singleCorrectEditor) SetOptionFeedback(id Identity, locale, fb string) error {
	return optionOps{e.it}.setFeedback(id, locale, fb)
}

// --- true_false: fixed two-option set with stable ids ---

type trueFalseEditor struct{ it *Item }

func (e *trueFalseEditor) MarkCorrect(id Identity) error {
	return (&singleCorrectEditor{e.it}).MarkCorrect(id)
}

func (e *trueFalseEditor) ClearCorrect(id Identity) error {
	return (&singleCorrectEditor{e.it}).ClearCorrect(id)
}

func (e *trueFalseEditor) AddOption() (Option, error) {
	return Option{}, ErrFixedOptionSet
}

func (e *trueFalseEditor) RemoveOption(Identity) error {
	return ErrFixedOptionSet
}

func (e *trueFalseEditor) SetOptionText(id Identity, locale, text string) error {
	return optionOps{e.it}.setText(id, locale, text)
}

func (e *trueFalseEditor) SetOptionFeedback(id Identity, locale, fb string) error {
	return optionOps{e.it}.setFeedback(id, locale, fb)
}

// --- multiple_response: any number of correct options ---

type multiCorrectEditor struct{ it *Item }

func (e *multiCorrectEditor) MarkCorrect(id Identity) error {
	o, err := optionOps{e.it}.find(id)
	if err != nil {
		return err
	}
	o.IsCorrect = true
	return nil
}

func (e *multiCorrectEditor) ClearCorrect(id Identity) error {
	o, err := optionOps{e.it}.find(id)
	if err != nil {
		return err
	}
	o.IsCorrect = false
	return nil
}

func (e *multiCorrectEditor) AddOption() (Option, error) {
	return optionOps{e.it}.add(), nil
}

func (e *multiCorrectEditor) RemoveOption(id Identity) error {
	return optionOps{e.it}.remove(id)
}

func (e *multiCorrectEditor) SetOptionText(id Identity, locale, text string) error {
	return optionOps{e.it}.setText(id, locale, text)
}

func (e *multiCorrectEditor) SetOptionFeedback(id Identity, locale, fb string) error {
	return optionOps{e.it}.setFeedback(id, locale, fb)
}

// --- short_answer / essay: no options at all ---

type optionlessEditor struct{}

func (optionlessEditor) MarkCorrect(Identity) error  { return ErrNoOptions }
func (optionlessEditor) ClearCorrect(Identity) error { return ErrNoOptions }
func (optionlessEditor) AddOption() (Option, error)  { return Option{}, ErrNoOptions }
func (optionlessEditor) RemoveOption(Identity) error { return ErrNoOptions }
func (optionlessEditor) SetOptionText(Identity, string, string) error {
	return ErrNoOptions
}
func (optionlessEditor) SetOptionFeedback(Identity, string, string) error {
	return ErrNoOptions
}

// --- fallback: types without a concrete editor still round-trip ---

type fallbackEditor struct{ it *Item }

func (e *fallbackEditor) MarkCorrect(id Identity) error {
	o, err := optionOps{e.it}.find(id)
	if err != nil {
		return err
	}
	o.IsCorrect = true
	return nil
}

func (e *fallbackEditor) ClearCorrect(id Identity) error {
	o, err := optionOps{e.it}.find(id)
	if err != nil {
		return err
	}
	o.IsCorrect = false
	return nil
}

func (e *fallbackEditor) AddOption() (Option, error) {
	return optionOps{e.it}.add(), nil
}

func (e *fallbackEditor) RemoveOption(id Identity) error {
	return optionOps{e.it}.remove(id)
}

func (e *fallbackEditor) SetOptionText(id Identity, locale, text string) error {
	return optionOps{e.it}.setText(id, locale, text)
}

func (e *fallbackEditor) SetOptionFeedback(id Identity, locale, fb string) error {
	return optionOps{e.it}.setFeedback(id, locale, fb)
}
