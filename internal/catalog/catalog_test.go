package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategories(t *testing.T) {
	names := CategoryNames()
	assert.Len(t, names, 5)
	assert.Equal(t, "Technology & Innovation", names[0])

	assert.True(t, IsCategory("Games & Entertainment"))
	assert.False(t, IsCategory("Cooking"))

	assert.True(t, IsSubcategory("Games & Entertainment", "Esports"))
	assert.False(t, IsSubcategory("Games & Entertainment", "Music"))
	assert.Nil(t, Subcategories("Cooking"))
}

func TestCategoriesAreCopies(t *testing.T) {
	subs := Subcategories("Creative Art & Media")
	subs[0] = "mutated"
	assert.Equal(t, "Film & Video", Subcategories("Creative Art & Media")[0])
}

func TestSocialPlatforms(t *testing.T) {
	assert.Len(t, SocialPlatforms(), 9)
	assert.True(t, IsSocialPlatform("YouTube"))
	assert.False(t, IsSocialPlatform("youtube"))
	assert.False(t, IsSocialPlatform(""))
}
