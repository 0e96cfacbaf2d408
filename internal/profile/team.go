package profile

import (
	"context"
	"strings"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
	"github.com/threef-labs/threef-cli/internal/validation"
)

type TeamMemberInput struct {
	Name        string `cli:"name" validate:"notblank,max=120"`
	Role        string `cli:"role" validate:"notblank,max=120"`
	Description string `cli:"description" validate:"max=2000"`
}

type TeamService struct {
	rows      owned[TeamMember]
	validator *validation.Validator
}

func NewTeamService(store rowstore.Store, identity Identity, v *validation.Validator) *TeamService {
	return &TeamService{
		rows:      owned[TeamMember]{store: store, identity: identity, table: TableTeam},
		validator: v,
	}
}

func (s *TeamService) List(ctx context.Context, userID string) ([]TeamMember, error) {
	return s.rows.list(ctx, userID)
}

func (s *TeamService) Mine(ctx context.Context) ([]TeamMember, error) {
	return s.rows.mine(ctx)
}

func (s *TeamService) Create(ctx context.Context, in TeamMemberInput) (*TeamMember, error) {
	row, err := s.row(in)
	if err != nil {
		return nil, err
	}
	return s.rows.create(ctx, row)
}

func (s *TeamService) Update(ctx context.Context, id string, in TeamMemberInput) error {
	row, err := s.row(in)
	if err != nil {
		return err
	}
	return s.rows.update(ctx, id, row)
}

func (s *TeamService) Delete(ctx context.Context, id string) error {
	return s.rows.delete(ctx, id)
}

func (s *TeamService) row(in TeamMemberInput) (rowstore.Row, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	in.Description = strings.TrimSpace(in.Description)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	return rowstore.Row{"name": in.Name, "role": in.Role, "description": in.Description}, nil
}
