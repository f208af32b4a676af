package repository

import (
	"context"
	"database/sql"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type SectionRepository struct {
	db *sql.DB
}

func NewSectionRepository(db *sql.DB) *SectionRepository {
	return &SectionRepository{db}
}

func (r *SectionRepository) Create(ctx context.Context, s *entity.Section) (*entity.Section, error) {
	q := `INSERT INTO sections (title, description, type, image, link, cta_text, is_visible) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Title, s.Description, s.Type, s.Image, s.Link, s.CTAText, s.IsVisible)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	s.ID = id
	return s, nil
}

func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*entity.Section, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, description, type, image, link, cta_text, is_visible, created_at FROM sections WHERE id = ?`, id)

	s := &entity.Section{}
	var desc, typ, image, link, cta sql.NullString
	err := row.Scan(&s.ID, &s.Title, &desc, &typ, &image, &link, &cta, &s.IsVisible, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Description, s.Type, s.Image, s.Link, s.CTAText = desc.String, typ.String, image.String, link.String, cta.String
	return s, nil
}

func (r *SectionRepository) List(ctx context.Context, spec query.Spec) ([]entity.Section, error) {
	q, args := spec.SQL(`SELECT id, title, description, type, image, link, cta_text, is_visible, created_at FROM sections`)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []entity.Section
	for rows.Next() {
		var s entity.Section
		var desc, typ, image, link, cta sql.NullString
		err := rows.Scan(&s.ID, &s.Title, &desc, &typ, &image, &link, &cta, &s.IsVisible, &s.CreatedAt)
		if err != nil {
			return nil, err
		}
		s.Description, s.Type, s.Image, s.Link, s.CTAText = desc.String, typ.String, image.String, link.String, cta.String
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

func (r *SectionRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	return count(ctx, r.db, "sections", where, args)
}

func (r *SectionRepository) Update(ctx context.Context, s *entity.Section) (*entity.Section, error) {
	q := `UPDATE sections SET title = ?, description = ?, type = ?, image = ?, link = ?, cta_text = ?, is_visible = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, s.Title, s.Description, s.Type, s.Image, s.Link, s.CTAText, s.IsVisible, s.ID)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SectionRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sections WHERE id = ?`, id)
	return err
}
