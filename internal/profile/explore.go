package profile

import (
	"context"
	"sort"
	"strings"

	"github.com/gosimple/slug"

	"github.com/threef-labs/threef-cli/internal/constants"
)

// Filter narrows the explore listing. Empty fields match everything.
type Filter struct {
	Search      string
	Category    string
	Subcategory string
	Country     string
	Sort        string
	Limit       int
}

// Matches reports whether info passes every filter. Search matches the
// brand or details case-insensitively, the others compare without case.
func (f Filter) Matches(info Info) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(info.Brand), q) && !strings.Contains(strings.ToLower(info.Details), q) {
			return false
		}
	}
	return equalOrEmpty(f.Category, info.Category) &&
		equalOrEmpty(f.Subcategory, info.Subcategory) &&
		equalOrEmpty(f.Country, info.Country)
}

func equalOrEmpty(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, strings.TrimSpace(got))
}

// Apply filters and sorts profiles. profiles are expected newest first, as
// returned by InfoService.All.
func (f Filter) Apply(profiles []Info) []Info {
	out := make([]Info, 0, len(profiles))
	for _, p := range profiles {
		if f.Matches(p) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case constants.SortBrand:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].Brand) < strings.ToLower(out[j].Brand)
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}

type ExploreService struct {
	info *InfoService
}

func NewExploreService(info *InfoService) *ExploreService {
	return &ExploreService{info: info}
}

// Explore lists the public profiles that pass f. No sign in is needed.
func (s *ExploreService) Explore(ctx context.Context, f Filter) ([]Info, error) {
	all, err := s.info.All(ctx)
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

// Slug is the URL path segment of a brand.
func Slug(brand string) string {
	return slug.Make(brand)
}

// PublicURL is the page of a profile on the web app at base.
func PublicURL(base string, info Info) string {
	s := Slug(info.Brand)
	if s == "" {
		s = info.UserID
	}
	return strings.TrimRight(base, "/") + "/o/" + s
}
