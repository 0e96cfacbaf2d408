package onboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/threef-labs/threef-cli/internal/catalog"
	"github.com/threef-labs/threef-cli/internal/constants"
	"github.com/threef-labs/threef-cli/internal/ui"
	"github.com/threef-labs/threef-cli/internal/wizard"
)

type navigation int

const (
	navNext navigation = iota
	navBack
)

// renderer shows one step at a time. It reads and writes the shared form
// and reports where the user wants to go next.
type renderer interface {
	Interactive() bool
	BasicInfo(form *wizard.FormState, errs wizard.FieldErrors) (navigation, error)
	Details(form *wizard.FormState, errs wizard.FieldErrors) (navigation, error)
	ConfirmRetry(err error) (bool, error)
}

type formRenderer struct {
	defaultCountry string
}

func (r *formRenderer) Interactive() bool { return true }

func (r *formRenderer) BasicInfo(form *wizard.FormState, errs wizard.FieldErrors) (navigation, error) {
	printFieldErrors(errs)

	brand := form.GetText(wizard.FieldBrand)
	country := form.GetText(wizard.FieldCountry)
	if country == "" {
		country = r.defaultCountry
	}
	category := form.GetText(wizard.FieldCategory)
	subcategory := form.GetText(wizard.FieldSubcategory)
	tags := strings.Join(form.GetList(wizard.FieldTags), ", ")
	accepted := form.GetFlag(wizard.FieldAcceptTerms)

	group := huh.NewGroup(
		huh.NewInput().
			Title("Brand / Organization Name").
			CharLimit(constants.MaxBrandLength).
			Value(&brand),
		huh.NewInput().
			Title("Country").
			Value(&country),
		huh.NewInput().
			Title("Category").
			Description("Start typing to pick one, e.g. "+strings.Join(firstN(catalog.CategoryNames(), 3), ", ")).
			Suggestions(catalog.CategoryNames()).
			Value(&category),
		huh.NewInput().
			Title("Subcategory").
			Suggestions(allSubcategories()).
			Value(&subcategory),
		huh.NewInput().
			Title("Brand Tags").
			Description(fmt.Sprintf("Comma separated, up to %d", constants.MaxTagCount)).
			Placeholder("crowdfunding, community").
			Value(&tags),
		huh.NewConfirm().
			Title("I agree to the terms of services of 3F").
			Affirmative("I agree").
			Negative("No").
			Value(&accepted),
	).Title("Basic Info").Description("Tell us about your organization")

	if err := runGroup(group); err != nil {
		return navNext, err
	}

	form.SetText(wizard.FieldBrand, brand)
	form.SetText(wizard.FieldCountry, country)
	form.SetText(wizard.FieldCategory, category)
	form.SetText(wizard.FieldSubcategory, subcategory)
	form.SetList(wizard.FieldTags, splitTags(tags))
	form.SetFlag(wizard.FieldAcceptTerms, accepted)
	return navNext, nil
}

func (r *formRenderer) Details(form *wizard.FormState, errs wizard.FieldErrors) (navigation, error) {
	printFieldErrors(errs)

	details := form.GetText(wizard.FieldDetails)
	socials := formatSocialLines(form.GetLinks(wizard.FieldSocials))
	action := "submit"

	group := huh.NewGroup(
		huh.NewText().
			Title("Details").
			Description("What is your organization about?").
			CharLimit(constants.MaxDetailsLength).
			Value(&details),
		huh.NewText().
			Title("Social Links").
			Description("One per line as <platform> <url>. Platforms: "+strings.Join(catalog.SocialPlatforms(), ", ")).
			Placeholder("Website https://example.com").
			Value(&socials),
		huh.NewSelect[string]().
			Title("Next").
			Options(
				huh.NewOption("Submit", "submit"),
				huh.NewOption("Back", "back"),
			).
			Value(&action),
	).Title("Details").Description("Describe your project and where people can find you")

	if err := runGroup(group); err != nil {
		return navNext, err
	}

	form.SetText(wizard.FieldDetails, details)
	form.SetLinks(wizard.FieldSocials, parseSocialLines(socials))
	if action == "back" {
		return navBack, nil
	}
	return navNext, nil
}

func (r *formRenderer) ConfirmRetry(err error) (bool, error) {
	return ui.Confirm("Saving your profile failed. Retry?",
		ui.WithDescription(err.Error()),
		ui.WithLabels("Retry", "Cancel"),
	)
}

func runGroup(group *huh.Group) error {
	err := huh.NewForm(group).WithTheme(ui.Theme()).WithKeyMap(ui.KeyMap()).Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return errCancelled
	}
	return err
}

func printFieldErrors(errs wizard.FieldErrors) {
	if len(errs) == 0 {
		return
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		ui.Error(errs[f])
	}
	ui.Line()
}

func splitTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// parseSocialLines reads "<platform> <url>" lines. A line holding a single
// word keeps it as the URL so the missing platform is reported.
func parseSocialLines(s string) []wizard.SocialLink {
	var links []wizard.SocialLink
	for _, line := range strings.Split(s, "\n") {
		fields := strings.Fields(line)
		switch len(fields) {
		case 0:
			continue
		case 1:
			links = append(links, wizard.SocialLink{URL: fields[0]})
		default:
			links = append(links, wizard.SocialLink{Platform: fields[0], URL: strings.Join(fields[1:], " ")})
		}
	}
	return links
}

func formatSocialLines(links []wizard.SocialLink) string {
	lines := make([]string, 0, len(links))
	for _, l := range links {
		lines = append(lines, strings.TrimSpace(l.Platform+" "+l.URL))
	}
	return strings.Join(lines, "\n")
}

func allSubcategories() []string {
	var out []string
	for _, c := range catalog.Categories() {
		out = append(out, c.Subcategories...)
	}
	return out
}

func firstN(s []string, n int) []string {
	if len(s) < n {
		return s
	}
	return s[:n]
}
