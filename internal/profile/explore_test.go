package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threef-labs/threef-cli/internal/constants"
)

func exploreFixture() []Info {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []Info{
		{UserID: "u3", Brand: "zeta Films", Category: "Film & Video", Subcategory: "Documentary", Country: "Ghana", CreatedAt: base.Add(3 * time.Hour)},
		{UserID: "u2", Brand: "Beta Games", Category: "Games", Subcategory: "Video Games", Country: "Nigeria", Details: "An open world RPG", CreatedAt: base.Add(2 * time.Hour)},
		{UserID: "u1", Brand: "Acme", Category: "Technology", Subcategory: "Software", Country: "nigeria", CreatedAt: base.Add(time.Hour)},
	}
}

func brands(infos []Info) []string {
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = info.Brand
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter newest first", Filter{}, []string{"zeta Films", "Beta Games", "Acme"}},
		{"sort by brand", Filter{Sort: constants.SortBrand}, []string{"Acme", "Beta Games", "zeta Films"}},
		{"search brand", Filter{Search: "ACME"}, []string{"Acme"}},
		{"search details", Filter{Search: "rpg"}, []string{"Beta Games"}},
		{"country ignores case", Filter{Country: "Nigeria"}, []string{"Beta Games", "Acme"}},
		{"category and subcategory", Filter{Category: "Games", Subcategory: "Video Games"}, []string{"Beta Games"}},
		{"no match", Filter{Category: "Music"}, []string{}},
		{"limit", Filter{Limit: 2}, []string{"zeta Films", "Beta Games"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, brands(tt.filter.Apply(exploreFixture())))
		})
	}
}

func TestExploreService(t *testing.T) {
	s, _, _, _ := newServices(t, "u1")
	ctx := context.Background()

	_, err := s.Info.Create(ctx, sampleSubmission())
	require.NoError(t, err)

	found, err := s.Explore.Explore(ctx, Filter{Search: "acme"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = s.Explore.Explore(ctx, Filter{Search: "nothing"})
	require.NoError(t, err)
	assert.Empty(t, found)
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t, "acme-studios", Slug("Acme Studios!"))
	assert.Equal(t, "https://3f.app/o/acme-studios", PublicURL("https://3f.app/", Info{Brand: "Acme Studios"}))
	assert.Equal(t, "https://3f.app/o/u1", PublicURL("https://3f.app", Info{UserID: "u1", Brand: "!!!"}))
}
