package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/01moynul/storefront-golang/internal/models"
)

const adminColumns = `id, name, email, password, role, created_at`

// GetAdminByEmail matches the email case-insensitively.
func (s *Store) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var a models.Admin
	err := s.db.GetContext(ctx, &a, `SELECT `+adminColumns+` FROM admins WHERE LOWER(email) = ?`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &a, nil
}

func (s *Store) GetAdmin(ctx context.Context, id int64) (*models.Admin, error) {
	var a models.Admin
	if err := s.db.GetContext(ctx, &a, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id); err != nil {
		return nil, notFoundIfNoRows(err)
	}
	return &a, nil
}

func (s *Store) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	admins := []models.Admin{}
	if err := s.db.SelectContext(ctx, &admins, `SELECT `+adminColumns+` FROM admins ORDER BY id ASC`); err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	return admins, nil
}

// CreateAdmin stores an admin whose PasswordHash is already bcrypt-hashed.
// A duplicate email surfaces as the driver's unique-key error.
func (s *Store) CreateAdmin(ctx context.Context, a *models.Admin) (int64, error) {
	if a.Role == "" {
		a.Role = models.RoleAdmin
	}
	a.CreatedAt = time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO admins (name, email, password, role, created_at) VALUES (?, ?, ?, ?, ?)`,
		a.Name, strings.ToLower(strings.TrimSpace(a.Email)), a.PasswordHash, a.Role, a.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("insert admin: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("admin id: %w", err)
	}
	a.ID = id
	return id, nil
}
