package wizard

import "github.com/threef-labs/threef-cli/internal/constants"

// StepID identifies a wizard step. Hosts dispatch rendering on it.
type StepID int

const (
	StepBasicInfo StepID = iota
	StepDetails
	StepComplete
)

func (id StepID) String() string {
	switch id {
	case StepBasicInfo:
		return "basic-info"
	case StepDetails:
		return "details"
	case StepComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Field names written by the onboarding steps.
const (
	FieldBrand       = "brand"
	FieldCountry     = "country"
	FieldCategory    = "category"
	FieldSubcategory = "subcategory"
	FieldTags        = "tags"
	FieldAcceptTerms = "acceptTerms"
	FieldDetails     = "details"
	FieldSocials     = "socials"
)

type Field struct {
	Name  string
	Label string
	Kind  Kind
}

// Step is one page of the wizard. Rules maps a field name to the rules
// evaluated for it, in order; the first violated rule wins.
type Step struct {
	ID          StepID
	Title       string
	Description string
	Fields      []Field
	Rules       map[string][]Rule
	// Submits marks a step that can only be left forward through Submit.
	Submits bool
	// Terminal marks the confirmation step.
	Terminal bool
}

func (s Step) label(field string) string {
	for _, f := range s.Fields {
		if f.Name == field {
			return f.Label
		}
	}
	return field
}

// DefaultSteps returns the onboarding flow: basic info, details with the
// submission, and the confirmation.
func DefaultSteps() []Step {
	return []Step{
		{
			ID:          StepBasicInfo,
			Title:       "Basic Info",
			Description: "Tell us about your organization",
			Fields: []Field{
				{Name: FieldBrand, Label: "Brand / Organization Name", Kind: KindText},
				{Name: FieldCountry, Label: "Country", Kind: KindText},
				{Name: FieldCategory, Label: "Category", Kind: KindText},
				{Name: FieldSubcategory, Label: "Subcategory", Kind: KindText},
				{Name: FieldTags, Label: "Brand Tags", Kind: KindList},
				{Name: FieldAcceptTerms, Label: "I agree to the terms of services of 3F", Kind: KindFlag},
			},
			Rules: map[string][]Rule{
				FieldBrand:       {Required(), MaxLength(constants.MaxBrandLength)},
				FieldCountry:     {Required()},
				FieldCategory:    {Required()},
				FieldSubcategory: {Required()},
				FieldTags:        {MaxItems(constants.MaxTagCount)},
				FieldAcceptTerms: {Accepted()},
			},
		},
		{
			ID:          StepDetails,
			Title:       "Details",
			Description: "Describe your project and where people can find you",
			Fields: []Field{
				{Name: FieldDetails, Label: "Details", Kind: KindText},
				{Name: FieldSocials, Label: "Social Links", Kind: KindLinks},
			},
			Rules: map[string][]Rule{
				FieldDetails: {Required(), MaxLength(constants.MaxDetailsLength)},
				FieldSocials: {SocialLinks()},
			},
			Submits: true,
		},
		{
			ID:          StepComplete,
			Title:       "Congratulations",
			Description: "Your organization profile was created",
			Terminal:    true,
		},
	}
}
