package wizard

import (
	"fmt"
	"strings"

	"github.com/threef-labs/threef-cli/internal/validation"
)

type RuleKind int

const (
	RuleRequired RuleKind = iota
	RuleMinLength
	RuleMaxLength
	RuleURL
	RuleLinks
	RuleAccepted
	RuleAmount
	RuleMaxItems
)

// Rule is one entry of a step's rule table. N is the bound for the
// length and count rules.
type Rule struct {
	Kind RuleKind
	N    int
}

func Required() Rule { return Rule{Kind: RuleRequired} }

func MinLength(n int) Rule { return Rule{Kind: RuleMinLength, N: n} }

func MaxLength(n int) Rule { return Rule{Kind: RuleMaxLength, N: n} }

func URL() Rule { return Rule{Kind: RuleURL} }

// SocialLinks requires at least one entry, each with a platform and an
// absolute http(s) URL. Any bad entry rejects the whole field.
func SocialLinks() Rule { return Rule{Kind: RuleLinks} }

func Accepted() Rule { return Rule{Kind: RuleAccepted} }

// Amount accepts an empty value (not provided) or a non-negative number.
func Amount() Rule { return Rule{Kind: RuleAmount} }

func MaxItems(n int) Rule { return Rule{Kind: RuleMaxItems, N: n} }

// MsgMustAcceptTerms is the fixed message for an unticked consent box.
const MsgMustAcceptTerms = "must accept terms"

var messages = map[RuleKind]string{
	RuleRequired:  "%s is required",
	RuleMinLength: "%s must be at least %d characters",
	RuleMaxLength: "%s must be at most %d characters",
	RuleURL:       "%s must be a valid http(s) URL",
	RuleAmount:    "%s must be empty or a non-negative number",
	RuleMaxItems:  "%s can have at most %d entries",
}

const (
	msgNoLinks  = "add at least one social link"
	msgBadLinks = "every social link needs a platform and a valid http(s) URL"
)

// checker evaluates rules. Predicates come from the shared validator so
// the wizard and the profile commands agree on what a URL or an amount is.
type checker struct {
	v *validation.Validator
}

func newChecker() (*checker, error) {
	v, err := validation.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize validator: %w", err)
	}
	return &checker{v: v}, nil
}

// check returns the violation message for r, or "" when val satisfies it.
func (c *checker) check(label string, r Rule, val Value) string {
	text := strings.TrimSpace(val.Text())

	switch r.Kind {
	case RuleRequired:
		if !c.present(val, text) {
			return fmt.Sprintf(messages[r.Kind], label)
		}
	case RuleMinLength, RuleMaxLength:
		if text == "" {
			return ""
		}
		tag := "min"
		if r.Kind == RuleMaxLength {
			tag = "max"
		}
		if c.v.Var(text, fmt.Sprintf("%s=%d", tag, r.N)) != nil {
			return fmt.Sprintf(messages[r.Kind], label, r.N)
		}
	case RuleURL:
		if text != "" && c.v.Var(text, "http_url") != nil {
			return fmt.Sprintf(messages[r.Kind], label)
		}
	case RuleLinks:
		return c.checkLinks(val.Links())
	case RuleAccepted:
		if !val.Flag() {
			return MsgMustAcceptTerms
		}
	case RuleAmount:
		if !validation.IsAmount(text) {
			return fmt.Sprintf(messages[r.Kind], label)
		}
	case RuleMaxItems:
		if len(NormalizeTags(val.List())) > r.N {
			return fmt.Sprintf(messages[r.Kind], label, r.N)
		}
	}
	return ""
}

func (c *checker) present(val Value, trimmed string) bool {
	switch val.Kind() {
	case KindText:
		return c.v.Var(trimmed, "notblank") == nil
	case KindList:
		return len(NormalizeTags(val.List())) > 0
	case KindLinks:
		return len(val.Links()) > 0
	case KindFlag:
		return val.Flag()
	default:
		return false
	}
}

func (c *checker) checkLinks(links []SocialLink) string {
	if len(links) == 0 {
		return msgNoLinks
	}
	for _, l := range links {
		if strings.TrimSpace(l.Platform) == "" {
			return msgBadLinks
		}
		if c.v.Var(strings.TrimSpace(l.URL), "required,http_url") != nil {
			return msgBadLinks
		}
	}
	return ""
}

// NormalizeTags trims every tag, drops empty ones and keeps the first
// occurrence of duplicates.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
