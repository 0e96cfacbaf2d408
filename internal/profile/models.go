package profile

import (
	"time"

	"github.com/threef-labs/threef-cli/internal/wizard"
)

const (
	TableInfo     = "info"
	TableTiers    = "tiers"
	TableFAQs     = "faqs"
	TableTeam     = "team"
	TableAbout    = "profile_about"
	TableProfiles = "profiles"

	AboutUserConstraint = "profile_about_user_id_key"
	ProfilesPKey        = "profiles_pkey"
)

// Info is the public profile of a creator.
type Info struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	Brand           string              `json:"brand"`
	Country         string              `json:"country"`
	Category        string              `json:"category"`
	Subcategory     string              `json:"subcategory"`
	Tags            []string            `json:"tags"`
	Details         string              `json:"details"`
	Socials         []wizard.SocialLink `json:"socials"`
	CoverImageURL   string              `json:"cover_image_url"`
	ProfileImageURL string              `json:"profile_image_url"`
	CreatedAt       time.Time           `json:"created_at"`
}

type Tier struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Name              string     `json:"name"`
	RewardDescription string     `json:"reward_description"`
	Amount            *float64   `json:"amount"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

type FAQ struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

type TeamMember struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type About struct {
	UserID string `json:"user_id"`
	About  string `json:"about"`
}

type profileRow struct {
	ID              string `json:"id"`
	ProfileImageURL string `json:"profile_image_url"`
}
