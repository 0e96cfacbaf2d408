package profile

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
	"github.com/threef-labs/threef-cli/internal/wizard"
)

type InfoService struct {
	store    rowstore.Store
	identity Identity
	log      *zerolog.Logger
}

func NewInfoService(store rowstore.Store, identity Identity, log *zerolog.Logger) *InfoService {
	return &InfoService{store: store, identity: identity, log: log}
}

// Create writes the profile collected by the onboarding wizard for the
// signed-in user.
func (s *InfoService) Create(ctx context.Context, sub wizard.Submission) (*Info, error) {
	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}

	tags := sub.Tags
	if tags == nil {
		tags = []string{}
	}
	socials := sub.Socials
	if socials == nil {
		socials = []wizard.SocialLink{}
	}

	row := rowstore.Row{
		"user_id":     user.ID,
		"brand":       sub.Brand,
		"country":     sub.Country,
		"category":    sub.Category,
		"subcategory": sub.Subcategory,
		"tags":        tags,
		"details":     sub.Details,
		"socials":     socials,
	}

	var info Info
	if err := s.store.Insert(ctx, TableInfo, row, &info); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	s.log.Debug().Str("user_id", user.ID).Str("id", info.ID).Msg("Profile created")
	return &info, nil
}

// Submit adapts Create to wizard.SubmitFunc.
func (s *InfoService) Submit(ctx context.Context, sub wizard.Submission) error {
	_, err := s.Create(ctx, sub)
	return err
}

// Mine returns the newest profile of the signed-in user.
func (s *InfoService) Mine(ctx context.Context) (*Info, error) {
	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return nil, err
	}
	info, err := s.ByUser(ctx, user.ID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return info, nil
}

// ByUser returns the newest profile of userID.
func (s *InfoService) ByUser(ctx context.Context, userID string) (*Info, error) {
	var rows []Info
	err := s.store.Select(ctx, TableInfo, rowstore.Query{
		Eq:      rowstore.Eq{"user_id": userID},
		OrderBy: "created_at",
		Desc:    true,
		Limit:   1,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("profile of user %s: %w", userID, ErrNotFound)
	}
	return &rows[0], nil
}

// All returns every profile, newest first.
func (s *InfoService) All(ctx context.Context) ([]Info, error) {
	var rows []Info
	err := s.store.Select(ctx, TableInfo, rowstore.Query{OrderBy: "created_at", Desc: true}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SetCoverImage points the signed-in user's profile at url.
func (s *InfoService) SetCoverImage(ctx context.Context, url string) error {
	user, err := requireUser(ctx, s.identity)
	if err != nil {
		return err
	}
	n, err := s.store.Update(ctx, TableInfo, rowstore.Eq{"user_id": user.ID}, rowstore.Row{"cover_image_url": url})
	if err != nil {
		return fmt.Errorf("failed to save cover image: %w", err)
	}
	if n == 0 {
		return ErrNoProfile
	}
	return nil
}
