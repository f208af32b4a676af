package repository

import (
	"context"
	"database/sql"

	"github.com/sufiansar/GloryShoppingBackend/internal/entity"
	"github.com/sufiansar/GloryShoppingBackend/internal/query"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	q := `INSERT INTO users (name, email, password_hash, phone, role, profile_image, is_verified, is_active) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, user.Name, user.Email, user.PasswordHash, user.Phone, user.Role, user.ProfileImage, user.IsVerified, user.IsActive)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = id
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	q := `SELECT id, name, email, password_hash, phone, role, profile_image, is_verified, is_active, created_at FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	q := `SELECT id, name, email, password_hash, phone, role, profile_image, is_verified, is_active, created_at FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, q, email))
}

func (r *UserRepository) List(ctx context.Context, spec query.Spec) ([]entity.User, error) {
	q, args := spec.SQL(`SELECT id, name, email, password_hash, phone, role, profile_image, is_verified, is_active, created_at FROM users`)
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []entity.User
	for rows.Next() {
		var u entity.User
		var phone, image sql.NullString
		err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &phone, &u.Role, &image, &u.IsVerified, &u.IsActive, &u.CreatedAt)
		if err != nil {
			return nil, err
		}
		u.Phone, u.ProfileImage = phone.String, image.String
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Count(ctx context.Context, where string, args []any) (int64, error) {
	return count(ctx, r.db, "users", where, args)
}

func (r *UserRepository) scanOne(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	var phone, image sql.NullString
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &phone, &user.Role, &image, &user.IsVerified, &user.IsActive, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	user.Phone, user.ProfileImage = phone.String, image.String
	return user, nil
}

func count(ctx context.Context, db *sql.DB, table, where string, args []any) (int64, error) {
	q := "SELECT COUNT(*) FROM " + table
	if where != "" {
		q += " WHERE " + where
	}
	var total int64
	err := db.QueryRowContext(ctx, q, args...).Scan(&total)
	return total, err
}
