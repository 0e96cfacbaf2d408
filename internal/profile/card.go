package profile

import (
	"context"
	"errors"
)

// Card is everything shown on the public page of a creator.
type Card struct {
	Info            Info         `json:"info" yaml:"info"`
	About           string       `json:"about" yaml:"about"`
	ProfileImageURL string       `json:"profile_image_url" yaml:"profile_image_url"`
	Tiers           []Tier       `json:"tiers" yaml:"tiers"`
	FAQs            []FAQ        `json:"faqs" yaml:"faqs"`
	Team            []TeamMember `json:"team" yaml:"team"`
}

// PublicCard loads the public page of userID.
func (s *Services) PublicCard(ctx context.Context, userID string) (*Card, error) {
	info, err := s.Info.ByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	card := &Card{Info: *info}
	var errs []error
	if card.About, err = s.About.Get(ctx, userID); err != nil {
		errs = append(errs, err)
	}
	if card.ProfileImageURL, err = s.Images.ProfileImage(ctx, userID); err != nil {
		errs = append(errs, err)
	}
	if card.Tiers, err = s.Tiers.List(ctx, userID); err != nil {
		errs = append(errs, err)
	}
	if card.FAQs, err = s.FAQs.List(ctx, userID); err != nil {
		errs = append(errs, err)
	}
	if card.Team, err = s.Team.List(ctx, userID); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return card, nil
}
