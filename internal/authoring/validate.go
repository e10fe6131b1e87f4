package authoring

import "strings"

// Validate checks the commit-blocking invariants of a single item and
// returns human-readable messages, one per violation. It never returns an
// error and has no side effects; callers may run it on every edit.
//
// Order contiguity and id uniqueness are session-level concerns and are
// enforced by the Session, not here.
func Validate(it Item) []string {
	var errs []string

	def := it.Translation(DefaultLocale.String())
	if def == nil || strings.TrimSpace(def.Text) == "" {
		errs = append(errs, "question text is required in the default locale")
	}

	if it.IsGradable && it.Points <= 0 {
		errs = append(errs, "a gradable question must be worth more than 0 points")
	}

	if IsChoiceType(it.Type) {
		if len(it.Options) == 0 {
			errs = append(errs, "at least one answer option is required")
		} else if it.IsGradable && !hasCorrectOption(it) {
			errs = append(errs, "a gradable question must have a correct option")
		}
	}

	return errs
}

func hasCorrectOption(it Item) bool {
	for _, o := range it.Options {
		if o.IsCorrect {
			return true
		}
	}
	return false
}
