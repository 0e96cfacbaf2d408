// Package catalog holds the fixed category tree and social platform list
// shared by the onboarding wizard, validation and explore filters.
package catalog

import "slices"

type Category struct {
	Name          string
	Subcategories []string
}

var categories = []Category{
	{
		Name: "Technology & Innovation",
		Subcategories: []string{
			"Software & Apps",
			"Consumer Electronics",
			"Green Tech & Sustainability",
			"Blockchain & Cryptocurrency",
			"Biotech & Health Tech",
			"Others",
		},
	},
	{
		Name:          "Creative Art & Media",
		Subcategories: []string{"Film & Video", "Photography", "Music", "Design", "Publishing"},
	},
	{
		Name:          "Business & Entrepreneurship",
		Subcategories: []string{"Startups", "E-commerce", "Services", "Finance"},
	},
	{
		Name:          "Games & Entertainment",
		Subcategories: []string{"Video Games", "Board Games", "Esports"},
	},
	{
		Name:          "Social Causes & Community",
		Subcategories: []string{"Education", "Environment", "Health", "Charity"},
	},
}

var socialPlatforms = []string{
	"Website",
	"YouTube",
	"Instagram",
	"Twitter",
	"Discord",
	"WhatsApp",
	"Telegram",
	"Facebook",
	"Linkedin",
}

// Categories returns the category tree in display order.
func Categories() []Category {
	return slices.Clone(categories)
}

func CategoryNames() []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}
	return names
}

// Subcategories returns nil for an unknown category.
func Subcategories(category string) []string {
	for _, c := range categories {
		if c.Name == category {
			return slices.Clone(c.Subcategories)
		}
	}
	return nil
}

func IsCategory(name string) bool {
	return Subcategories(name) != nil
}

func IsSubcategory(category, sub string) bool {
	return slices.Contains(Subcategories(category), sub)
}

func SocialPlatforms() []string {
	return slices.Clone(socialPlatforms)
}

func IsSocialPlatform(name string) bool {
	return slices.Contains(socialPlatforms, name)
}
