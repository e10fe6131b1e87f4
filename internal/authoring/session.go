package authoring

import (
	"errors"
	"fmt"
)

// Well-known option id values seeded on true_false creation so later edits
// can target the two options without guessing at positions.
const (
	TrueOptionValue  = "opt-true"
	FalseOptionValue = "opt-false"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// SeedFunc supplies a pre-built item for a type, e.g. from a template
// library. Returning false falls back to the built-in defaults.
type SeedFunc func(t ItemType) (Item, bool)

// Session owns the authoritative ordered item list for one authoring
// context. It is handed explicitly to every collaborator; there is no
// package-level current session. A Session does not touch the network.
type Session struct {
	id    string
	items []Item
	seed  SeedFunc
}

type SessionOption func(*Session)

// WithSeed installs a template source consulted by Create before the
// built-in per-type defaults.
func WithSeed(fn SeedFunc) SessionOption {
	return func(s *Session) { s.seed = fn }
}

// WithItems seeds the session with an already-persisted list, e.g. loaded
// from storage. Orders are renumbered to 0..N-1.
func WithItems(items []Item) SessionOption {
	return func(s *Session) {
		s.items = make([]Item, len(items))
		for i, it := range items {
			s.items[i] = it.Clone()
		}
		s.renumber()
	}
}

func NewSession(id string, opts ...SessionOption) *Session {
	s := &Session{id: id}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) ID() string { return s.id }
func (s *Session) Len() int   { return len(s.items) }

// Items returns a deep copy of the list; callers cannot mutate the
// session through it.
func (s *Session) Items() []Item {
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

// ItemByID returns a copy of the item with that id.
func (s *Session) ItemByID(id Identity) (Item, bool) {
	for _, it := range s.items {
		if it.ID.Equal(id) {
			return it.Clone(), true
		}
	}
	return Item{}, false
}

// Create builds a new item of the given type with sane defaults, appends
// it and assigns the next order. The item carries a local identity until a
// batch save confirms it.
func (s *Session) Create(t ItemType) Item {
	var it Item
	if s.seed != nil {
		if seeded, ok := s.seed(t); ok {
			it = seeded.Clone()
		}
	}
	if it.Type == "" {
		it = defaultItem(t)
	} else if t == TypeTrueFalse {
		// Templates may set text, points and metadata, but never the option
		// pair: true_false always carries the two fixed options with stable
		// ids, otherwise later edits could not target them.
		it.Options = defaultItem(TypeTrueFalse).Options
	}
	it.ID = NewLocalID()
	it.Order = len(s.items)
	s.items = append(s.items, it)
	return it.Clone()
}

// Update replaces the item with a matching id, or appends when no item
// matches (a freshly created item being committed for the first time goes
// through the same path). Validation is the caller's responsibility.
func (s *Session) Update(item Item) {
	for i := range s.items {
		if s.items[i].ID.Equal(item.ID) {
			item.Order = s.items[i].Order
			s.items[i] = item.Clone()
			return
		}
	}
	item.Order = len(s.items)
	s.items = append(s.items, item.Clone())
}

// Remove deletes the item with that id and immediately renumbers the
// remaining orders to stay contiguous. Reports whether anything was removed.
func (s *Session) Remove(id Identity) bool {
	for i := range s.items {
		if s.items[i].ID.Equal(id) {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.renumber()
			return true
		}
	}
	return false
}

// Duplicate deep-clones the item, mints fresh local identities for the
// clone and every option, and appends it at the end.
func (s *Session) Duplicate(item Item) Item {
	dup := item.Clone()
	dup.ID = NewLocalID()
	for i := range dup.Options {
		dup.Options[i].ID = NewLocalID()
	}
	dup.Order = len(s.items)
	s.items = append(s.items, dup)
	return dup.Clone()
}

// Reorder moves the item at from to position to (remove-and-reinsert, not
// a swap) and renumbers the whole list.
func (s *Session) Reorder(from, to int) error {
	n := len(s.items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: move %d -> %d with %d items", ErrIndexOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	moved := s.items[from]
	s.items = append(s.items[:from], s.items[from+1:]...)
	s.items = append(s.items[:to], append([]Item{moved}, s.items[to:]...)...)
	s.renumber()
	return nil
}

func (s *Session) renumber() {
	for i := range s.items {
		s.items[i].Order = i
	}
}

func defaultItem(t ItemType) Item {
	it := Item{
		Type:       t,
		IsGradable: true,
		Points:     1,
		Translations: []Translation{
			{Locale: DefaultLocale.String()},
		},
	}
	switch t {
	case TypeTrueFalse:
		it.Options = []Option{
			{
				ID:    Identity{Kind: IdentityLocal, Value: TrueOptionValue},
				Order: 0,
				Translations: []OptionTranslation{
					{Locale: DefaultLocale.String(), Text: "Verdadero"},
				},
			},
			{
				ID:    Identity{Kind: IdentityLocal, Value: FalseOptionValue},
				Order: 1,
				Translations: []OptionTranslation{
					{Locale: DefaultLocale.String(), Text: "Falso"},
				},
			},
		}
	case TypeMultipleChoice, TypeMultipleResponse:
		it.Options = []Option{
			{ID: NewLocalID(), Order: 0, Translations: []OptionTranslation{{Locale: DefaultLocale.String()}}},
			{ID: NewLocalID(), Order: 1, Translations: []OptionTranslation{{Locale: DefaultLocale.String()}}},
		}
	case TypeShortAnswer:
		it.Answer = &AnswerConfig{ManualGrading: true, MaxLength: 255}
	case TypeEssay:
		it.Answer = &AnswerConfig{ManualGrading: true, MaxWords: 500}
	}
	return it
}
