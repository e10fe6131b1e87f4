package authoring

import "errors"

var (
	ErrEditorClosed    = errors.New("editor already closed")
	ErrLocaleNotSeeded = errors.New("no translation entry for locale")
)

// Editor stages edits to a single item on a deep working copy. Nothing
// reaches the session until Save passes validation; Cancel discards the
// copy. Field setters replace whole values, never patch.
type Editor struct {
	session *Session
	draft   Item
	closed  bool
}

// NewEditor opens an editor over a copy of item. The item may come from
// Session.Create (new) or Session.ItemByID (existing); both commit through
// the same Save path.
func NewEditor(session *Session, item Item) *Editor {
	return &Editor{session: session, draft: item.Clone()}
}

// Draft returns a copy of the current working state.
func (e *Editor) Draft() Item { return e.draft.Clone() }

// Answers returns the type-specific answer editor bound to the draft.
func (e *Editor) Answers() AnswerEditor { return AnswerEditorFor(&e.draft) }

// SetText replaces the question text for an existing locale entry. Locales
// are never auto-created here: the default locale is pre-seeded by Create,
// further locales are an explicit item-level operation.
func (e *Editor) SetText(locale, text string) error {
	return e.mutateTranslation(locale, func(tr *Translation) { tr.Text = text })
}

// SetHint replaces the hint for an existing locale entry.
func (e *Editor) SetHint(locale, hint string) error {
	return e.mutateTranslation(locale, func(tr *Translation) { tr.Hint = hint })
}

// SetFeedback replaces the feedback for an existing locale entry.
func (e *Editor) SetFeedback(locale, feedback string) error {
	return e.mutateTranslation(locale, func(tr *Translation) { tr.Feedback = feedback })
}

// AddLocale seeds an empty translation entry for a new locale. No-op when
// the locale already exists.
func (e *Editor) AddLocale(locale string) {
	if e.draft.Translation(locale) != nil {
		return
	}
	e.draft.Translations = append(e.draft.Translations, Translation{Locale: locale})
}

func (e *Editor) mutateTranslation(locale string, apply func(*Translation)) error {
	tr := e.draft.Translation(locale)
	if tr == nil {
		return ErrLocaleNotSeeded
	}
	apply(tr)
	return nil
}

// SetGradable toggles grading; points keep their value but only matter
// while gradable.
func (e *Editor) SetGradable(gradable bool) { e.draft.IsGradable = gradable }

func (e *Editor) SetPoints(points float64)    { e.draft.Points = points }
func (e *Editor) SetRequired(required bool)   { e.draft.IsRequired = required }
func (e *Editor) SetPartialCredit(allow bool) { e.draft.AllowPartialCredit = allow }

func (e *Editor) SetClassification(difficulty, category, tag string) {
	e.draft.Difficulty = difficulty
	e.draft.Category = category
	e.draft.Tag = tag
}

// SetAnswerConfig replaces the scalar answer configuration wholesale.
func (e *Editor) SetAnswerConfig(cfg AnswerConfig) {
	e.draft.Answer = &cfg
}

// Save validates the draft. With a non-empty error list the session is not
// touched and the editor stays open for correction. With a clean draft the
// item is committed via Session.Update and the editor closes.
func (e *Editor) Save() []string {
	if e.closed {
		return []string{ErrEditorClosed.Error()}
	}
	if errs := Validate(e.draft); len(errs) > 0 {
		return errs
	}
	e.session.Update(e.draft)
	e.closed = true
	return nil
}

// Cancel discards the working copy without committing.
func (e *Editor) Cancel() { e.closed = true }

// Closed reports whether Save or Cancel has ended the editing pass.
func (e *Editor) Closed() bool { return e.closed }
