// Package maintenance implements the one-shot storectl operations: admin
// seeding, table dumps, verification and reference-data scraping.
package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/database"
	"github.com/01moynul/storefront-golang/internal/models"
	"github.com/01moynul/storefront-golang/internal/store"
)

// Output formats accepted by --format.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// SeedAdmin creates an admin with a bcrypt-hashed password. An existing
// email is not an error: created is false and nothing is changed.
func SeedAdmin(ctx context.Context, st *store.Store, name, email, password, role string) (created bool, err error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return false, fmt.Errorf("email and password are required")
	}
	if role == "" {
		role = models.RoleAdmin
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return false, err
	}

	_, err = st.CreateAdmin(ctx, &models.Admin{Name: name, Email: email, PasswordHash: hash, Role: role})
	if database.IsDuplicate(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// VerifyReport is what `storectl verify` prints.
type VerifyReport struct {
	Counts store.Stats    `json:"counts" yaml:"counts"`
	Admins []AdminSummary `json:"admins" yaml:"admins"`
}

type AdminSummary struct {
	Name  string `json:"name" yaml:"name"`
	Email string `json:"email" yaml:"email"`
	Role  string `json:"role" yaml:"role"`
}

func Verify(ctx context.Context, st *store.Store) (VerifyReport, error) {
	stats, err := st.Stats(ctx)
	if err != nil {
		return VerifyReport{}, err
	}
	admins, err := st.ListAdmins(ctx)
	if err != nil {
		return VerifyReport{}, err
	}

	report := VerifyReport{Counts: stats, Admins: make([]AdminSummary, len(admins))}
	for i, a := range admins {
		report.Admins[i] = AdminSummary{Name: a.Name, Email: a.Email, Role: a.Role}
	}
	return report, nil
}

// Write encodes v to w as YAML or JSON.
func Write(w io.Writer, format string, v any) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML, "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format %q: must be yaml or json", format)
	}
}
