package wizard

import (
	"context"
	"strings"
)

// Submission is the trimmed payload built from the form when the
// submitting step is confirmed.
type Submission struct {
	Brand       string       `json:"brand"`
	Country     string       `json:"country"`
	Category    string       `json:"category"`
	Subcategory string       `json:"subcategory"`
	Tags        []string     `json:"tags"`
	Details     string       `json:"details"`
	Socials     []SocialLink `json:"socials"`
}

// SubmitFunc performs the remote write of one submission.
type SubmitFunc func(ctx context.Context, s Submission) error

// BuildSubmission snapshots the form into a Submission.
func BuildSubmission(form *FormState) Submission {
	links := form.GetLinks(FieldSocials)
	socials := make([]SocialLink, 0, len(links))
	for _, l := range links {
		socials = append(socials, SocialLink{
			Platform: strings.TrimSpace(l.Platform),
			URL:      strings.TrimSpace(l.URL),
		})
	}

	return Submission{
		Brand:       strings.TrimSpace(form.GetText(FieldBrand)),
		Country:     strings.TrimSpace(form.GetText(FieldCountry)),
		Category:    strings.TrimSpace(form.GetText(FieldCategory)),
		Subcategory: strings.TrimSpace(form.GetText(FieldSubcategory)),
		Tags:        NormalizeTags(form.GetList(FieldTags)),
		Details:     strings.TrimSpace(form.GetText(FieldDetails)),
		Socials:     socials,
	}
}

// Fields returns the submission as a column map for logging.
func (s Submission) Fields() map[string]any {
	return map[string]any{
		FieldBrand:       s.Brand,
		FieldCountry:     s.Country,
		FieldCategory:    s.Category,
		FieldSubcategory: s.Subcategory,
		FieldTags:        s.Tags,
		FieldDetails:     s.Details,
		FieldSocials:     s.Socials,
	}
}
