package profile

import (
	"context"
	"strings"

	"github.com/threef-labs/threef-cli/internal/client/rowstore"
	"github.com/threef-labs/threef-cli/internal/validation"
)

type FAQInput struct {
	Question string `cli:"question" validate:"notblank,max=300"`
	Answer   string `cli:"answer" validate:"notblank,max=2000"`
}

type FAQService struct {
	rows      owned[FAQ]
	validator *validation.Validator
}

func NewFAQService(store rowstore.Store, identity Identity, v *validation.Validator) *FAQService {
	return &FAQService{
		rows:      owned[FAQ]{store: store, identity: identity, table: TableFAQs},
		validator: v,
	}
}

func (s *FAQService) List(ctx context.Context, userID string) ([]FAQ, error) {
	return s.rows.list(ctx, userID)
}

func (s *FAQService) Mine(ctx context.Context) ([]FAQ, error) {
	return s.rows.mine(ctx)
}

func (s *FAQService) Create(ctx context.Context, in FAQInput) (*FAQ, error) {
	row, err := s.row(in)
	if err != nil {
		return nil, err
	}
	return s.rows.create(ctx, row)
}

func (s *FAQService) Update(ctx context.Context, id string, in FAQInput) error {
	row, err := s.row(in)
	if err != nil {
		return err
	}
	return s.rows.update(ctx, id, row)
}

func (s *FAQService) Delete(ctx context.Context, id string) error {
	return s.rows.delete(ctx, id)
}

func (s *FAQService) row(in FAQInput) (rowstore.Row, error) {
	in.Question = strings.TrimSpace(in.Question)
	in.Answer = strings.TrimSpace(in.Answer)
	if err := s.validator.Struct(in); err != nil {
		return nil, err
	}
	return rowstore.Row{"question": in.Question, "answer": in.Answer}, nil
}
