package wizard

import (
	"fmt"
	"sort"
	"strings"
)

// FieldErrors maps a field name to a human-readable message. It holds
// every violated field of a step, not just the first.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	names := make([]string, 0, len(fe))
	for name := range fe {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("validation error")
	for _, name := range names {
		fmt.Fprintf(&b, "\n%s: %s", name, fe[name])
	}
	return b.String()
}

// validateStep evaluates the whole rule table of step against form.
// It returns nil when every field is accepted.
func validateStep(c *checker, step Step, form *FormState) FieldErrors {
	errs := FieldErrors{}
	for field, rules := range step.Rules {
		val := form.Get(field)
		for _, r := range rules {
			if msg := c.check(step.label(field), r, val); msg != "" {
				errs[field] = msg
				break
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
