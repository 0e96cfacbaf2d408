package profile

import (
	"context"
	"strings"
	"time"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
	"github.com/threef-labs/threef-cli/internal/validation"
)

// TierInput is a support tier as entered by the user.
type TierInput struct {
	Name              string `cli:"name" validate:"notblank,max=120"`
	RewardDescription string `cli:"reward" validate:"max=2000"`
	Amount            string `cli:"amount" validate:"amount"`
}

func (in TierInput) trimmed() TierInput {
	return TierInput{
		Name:              strings.TrimSpace(in.Name),
		RewardDescription: strings.TrimSpace(in.RewardDescription),
		Amount:            strings.TrimSpace(in.Amount),
	}
}

func (in TierInput) row() (rowstore.Row, error) {
	amount, err := validation.ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}
	return rowstore.Row{
		"name":               in.Name,
		"reward_description": in.RewardDescription,
		"amount":             amount,
	}, nil
}

type TierService struct {
	rows      owned[Tier]
	validator *validation.Validator
	now       func() time.Time
}

func NewTierService(store rowstore.Store, identity Identity, v *validation.Validator) *TierService {
	return &TierService{
		rows:      owned[Tier]{store: store, identity: identity, table: TableTiers},
		validator: v,
		now:       time.Now,
	}
}

// List returns the tiers of userID, oldest first.
func (s *TierService) List(ctx context.Context, userID string) ([]Tier, error) {
	return s.rows.list(ctx, userID)
}

func (s *TierService) Mine(ctx context.Context) ([]Tier, error) {
	return s.rows.mine(ctx)
}

func (s *TierService) Create(ctx context.Context, in TierInput) (*Tier, error) {
	in = in.trimmed()
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	row, err := in.row()
	if err != nil {
		return nil, err
	}
	return s.rows.create(ctx, row)
}

func (s *TierService) Update(ctx context.Context, id string, in TierInput) error {
	in = in.trimmed()
	if err := s.validator.Struct(in); err != nil {
		return err
	}
	row, err := in.row()
	if err != nil {
		return err
	}
	row["updated_at"] = s.now().UTC().Format(time.RFC3339)
	return s.rows.update(ctx, id, row)
}

func (s *TierService) Delete(ctx context.Context, id string) error {
	return s.rows.delete(ctx, id)
}
