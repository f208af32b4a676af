package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sufiansar/GloryShoppingBackend/internal/apperr"
	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type SectionRepository interface {
	Create(ctx context.Context, s *entity.Section) (*entity.Section, error)
	GetByID(ctx context.Context, id int64) (*entity.Section, error)
	List(ctx context.Context, spec query.Spec) ([]entity.Section, error)
	Count(ctx context.Context, where string, args []any) (int64, error)
	Update(ctx context.Context, s *entity.Section) (*entity.Section, error)
	Delete(ctx context.Context, id int64) error
}

type SectionService struct {
	repo SectionRepository
}

func NewSectionService(repo SectionRepository) *SectionService {
	return &SectionService{repo: repo}
}

func (s *SectionService) Create(ctx context.Context, section *entity.Section) (*entity.Section, error) {
	if section.Title == "" {
		return nil, apperr.Validation("section title is required")
	}
	return s.repo.Create(ctx, section)
}

func (s *SectionService) GetByID(ctx context.Context, id int64) (*entity.Section, error) {
	section, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.NotFound("section %d not found", id)
		}
		return nil, err
	}
	return section, nil
}

var sectionFilters = map[string]query.Predicate{
	"type":      query.Equals("type"),
	"isVisible": query.Bool("is_visible"),
}

func (s *SectionService) List(ctx context.Context, params map[string]string) ([]entity.Section, query.Meta, error) {
	b := query.New(params).
		Filter(sectionFilters).
		Search("title", "description").
		Paginate()

	sections, err := s.repo.List(ctx, b.Build())
	if err != nil {
		return nil, query.Meta{}, err
	}
	meta, err := b.Meta(ctx, s.repo.Count)
	if err != nil {
		return nil, query.Meta{}, err
	}
	return sections, meta, nil
}

func (s *SectionService) Update(ctx context.Context, section *entity.Section) (*entity.Section, error) {
	current, err := s.GetByID(ctx, section.ID)
	if err != nil {
		return nil, err
	}
	if section.Title == "" {
		section.Title = current.Title
	}
	return s.repo.Update(ctx, section)
}

func (s *SectionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
