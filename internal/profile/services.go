package profile

import (
	"github.com/rs/zerolog"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
	"github.com/threef-labs/threef-cli/internal/validation"
)

// Services bundles the profile services over one store and identity.
type Services struct {
	Info    *InfoService
	Tiers   *TierService
	FAQs    *FAQService
	Team    *TeamService
	About   *AboutService
	Images  *ImageService
	Explore *ExploreService
}

// New wires every service. uploader may be nil for commands that never
// upload images.
func New(store rowstore.Store, identity Identity, uploader Uploader, log *zerolog.Logger) (*Services, error) {
	v, err := validation.NewValidator()
	if err != nil {
		return nil, err
	}

	info := NewInfoService(store, identity, log)
	return &Services{
		Info:    info,
		Tiers:   NewTierService(store, identity, v),
		FAQs:    NewFAQService(store, identity, v),
		Team:    NewTeamService(store, identity, v),
		About:   NewAboutService(store, identity),
		Images:  NewImageService(store, identity, uploader, info, v, log),
		Explore: NewExploreService(info),
	}, nil
}
