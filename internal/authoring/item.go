package authoring

import (
	"github.com/google/uuid"
	"golang.org/x/text/language"
)

// ItemType tags one entry in the closed set of authorable question kinds.
// The set is a superset of what has a concrete answer editor; unhandled
// types still round-trip through the session untouched.
type ItemType string

const (
	TypeMultipleChoice   ItemType = "multiple_choice"
	TypeMultipleResponse ItemType = "multiple_response"
	TypeTrueFalse        ItemType = "true_false"
	TypeShortAnswer      ItemType = "short_answer"
	TypeEssay            ItemType = "essay"
	TypeMatching         ItemType = "matching"
	TypeOrdering         ItemType = "ordering"
	TypeFillInBlank      ItemType = "fill_in_blank"
	TypeScale            ItemType = "scale"
	TypeMatrix           ItemType = "matrix"
)

// KnownTypes lists every declared item type in a stable order.
var KnownTypes = []ItemType{
	TypeMultipleChoice, TypeMultipleResponse, TypeTrueFalse,
	TypeShortAnswer, TypeEssay, TypeMatching, TypeOrdering,
	TypeFillInBlank, TypeScale, TypeMatrix,
}

// IsChoiceType reports whether t requires a non-empty option set.
func IsChoiceType(t ItemType) bool {
	switch t {
	case TypeMultipleChoice, TypeMultipleResponse, TypeTrueFalse:
		return true
	}
	return false
}

// IdentityKind says whether an id was minted locally or assigned by the server.
type IdentityKind string

const (
	IdentityLocal     IdentityKind = "local"
	IdentityPersisted IdentityKind = "persisted"
)

// Identity is a tagged id: "is this saved yet" is answered by the Kind tag,
// not by sniffing a prefix out of the value.
type Identity struct {
	Kind  IdentityKind `json:"kind"`
	Value string       `json:"value"`
}

func NewLocalID() Identity {
	return Identity{Kind: IdentityLocal, Value: uuid.NewString()}
}

func PersistedID(v string) Identity {
	return Identity{Kind: IdentityPersisted, Value: v}
}

func (id Identity) IsZero() bool  { return id.Value == "" }
func (id Identity) IsLocal() bool { return id.Kind == IdentityLocal }

// Equal compares by value only: a locally minted id stays the same id once
// the server confirms it.
func (id Identity) Equal(other Identity) bool { return id.Value == other.Value }

// DefaultLocale is the locale every item is seeded with; its question text
// must be non-empty before an item can be committed.
var DefaultLocale = language.Spanish

// Translation is one per-language text block of an item.
type Translation struct {
	Locale   string `json:"locale"`
	Text     string `json:"text"`
	Hint     string `json:"hint,omitempty"`
	Feedback string `json:"feedback,omitempty"`
}

// OptionTranslation is one per-language text block of an option.
type OptionTranslation struct {
	Locale   string `json:"locale"`
	Text     string `json:"text"`
	Feedback string `json:"feedback,omitempty"`
}

// Option is one selectable sub-record of a choice-like item.
type Option struct {
	ID           Identity            `json:"id"`
	Order        int                 `json:"order"`
	IsCorrect    bool                `json:"is_correct"`
	Translations []OptionTranslation `json:"translations,omitempty"`
}

// AnswerConfig holds the scalar grading configuration of short_answer and
// essay items, which carry no options.
type AnswerConfig struct {
	CaseSensitive bool `json:"case_sensitive,omitempty"`
	MinLength     int  `json:"min_length,omitempty"`
	MaxLength     int  `json:"max_length,omitempty"`
	MinWords      int  `json:"min_words,omitempty"`
	MaxWords      int  `json:"max_words,omitempty"`
	// ManualGrading is always true for these types; kept explicit so the
	// payload states it rather than implying it.
	ManualGrading bool `json:"manual_grading,omitempty"`
}

// Item is one authored question or activity entry within a session.
type Item struct {
	ID                 Identity      `json:"id"`
	Type               ItemType      `json:"type"`
	Order              int           `json:"order"`
	IsGradable         bool          `json:"is_gradable"`
	Points             float64       `json:"points,omitempty"`
	IsRequired         bool          `json:"is_required"`
	AllowPartialCredit bool          `json:"allow_partial_credit,omitempty"`
	Difficulty         string        `json:"difficulty,omitempty"`
	Category           string        `json:"category,omitempty"`
	Tag                string        `json:"tag,omitempty"`
	Translations       []Translation `json:"translations"`
	Options            []Option      `json:"options,omitempty"`
	Answer             *AnswerConfig `json:"answer,omitempty"`
}

// Clone returns a deep copy: translations, options and answer config are
// all fresh slices/records, identities included.
func (it Item) Clone() Item {
	out := it
	out.Translations = append([]Translation(nil), it.Translations...)
	out.Options = make([]Option, len(it.Options))
	for i, o := range it.Options {
		oc := o
		oc.Translations = append([]OptionTranslation(nil), o.Translations...)
		out.Options[i] = oc
	}
	if it.Answer != nil {
		a := *it.Answer
		out.Answer = &a
	}
	return out
}

// Translation returns a pointer to the entry matching locale, or nil.
// Locale comparison is canonical (BCP-47), so "ES" and "es" match.
func (it *Item) Translation(locale string) *Translation {
	want := canonicalLocale(locale)
	for i := range it.Translations {
		if canonicalLocale(it.Translations[i].Locale) == want {
			return &it.Translations[i]
		}
	}
	return nil
}

// OptionByID returns a pointer to the option whose id value matches, or nil.
func (it *Item) OptionByID(id Identity) *Option {
	for i := range it.Options {
		if it.Options[i].ID.Equal(id) {
			return &it.Options[i]
		}
	}
	return nil
}

func canonicalLocale(s string) string {
	tag, err := language.Parse(s)
	if err != nil {
		return s
	}
	return tag.String()
}
