package onboard

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/threef-labs/threef-cli/internal/wizard"
)

// Answers prefill the onboarding form from a YAML or TOML file.
type Answers struct {
	Brand       string              `yaml:"brand"        toml:"brand"`
	Country     string              `yaml:"country"      toml:"country"`
	Category    string              `yaml:"category"     toml:"category"`
	Subcategory string              `yaml:"subcategory"  toml:"subcategory"`
	Tags        []string            `yaml:"tags"         toml:"tags"`
	AcceptTerms bool                `yaml:"accept_terms" toml:"accept_terms"`
	Details     string              `yaml:"details"      toml:"details"`
	Socials     []wizard.SocialLink `yaml:"socials"      toml:"socials"`
}

func LoadAnswers(path string) (*Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read answers file: %w", err)
	}

	var a Answers
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &a); err != nil {
			return nil, fmt.Errorf("failed to parse answers file %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &a); err != nil {
			return nil, fmt.Errorf("failed to parse answers file %s: %w", path, err)
		}
	}
	return &a, nil
}

// fill writes the answers of step into form. Fields of other steps are
// left alone.
func (a *Answers) fill(step wizard.StepID, form *wizard.FormState) {
	switch step {
	case wizard.StepBasicInfo:
		form.SetText(wizard.FieldBrand, a.Brand)
		form.SetText(wizard.FieldCountry, a.Country)
		form.SetText(wizard.FieldCategory, a.Category)
		form.SetText(wizard.FieldSubcategory, a.Subcategory)
		form.SetList(wizard.FieldTags, a.Tags)
		form.SetFlag(wizard.FieldAcceptTerms, a.AcceptTerms)
	case wizard.StepDetails:
		form.SetText(wizard.FieldDetails, a.Details)
		form.SetLinks(wizard.FieldSocials, a.Socials)
	}
}

// answersRenderer drives the wizard from a file without prompting.
type answersRenderer struct {
	answers *Answers
}

func (r *answersRenderer) Interactive() bool { return false }

func (r *answersRenderer) BasicInfo(form *wizard.FormState, _ wizard.FieldErrors) (navigation, error) {
	r.answers.fill(wizard.StepBasicInfo, form)
	return navNext, nil
}

func (r *answersRenderer) Details(form *wizard.FormState, _ wizard.FieldErrors) (navigation, error) {
	r.answers.fill(wizard.StepDetails, form)
	return navNext, nil
}

func (r *answersRenderer) ConfirmRetry(error) (bool, error) { return false, nil }
