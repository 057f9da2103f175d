package db

import (
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/lexgate/lexgate/internal/errors"
)

// Template is a stored reference contract used for similarity
// corroboration. Vector is a term-frequency map over the template's
// tokens, normalized so weights sum to 1.
type Template struct {
	ID           string             `json:"id"`
	NameRaw      string             `json:"name"`
	NameNorm     string             `json:"-"`
	ContractType string             `json:"contract_type,omitempty"`
	TextChars    int                `json:"text_chars"`
	Vector       map[string]float64 `json:"-"`
	CreatedAt    int64              `json:"created_at"`
}

// ErrDuplicateName is returned when an insert violates the unique
// template-name constraint.
var ErrDuplicateName = &errors.GateError{
	Code:    "DUPLICATE_NAME",
	Status:  409,
	Message: "a template with this name already exists",
}

// NormalizeName canonicalizes a template name for uniqueness checks.
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// InsertTemplate stores a new template.
func InsertTemplate(db *sql.DB, t *Template) error {
	vectorJSON, err := json.Marshal(t.Vector)
	if err != nil {
		return errors.NewInternal(err)
	}
	if t.CreatedAt == 0 {
		t.CreatedAt = time.Now().Unix()
	}

	query := `
		INSERT INTO templates (
			id, name_raw, name_norm, contract_type,
			text_chars, vector_json, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = db.Exec(query,
		t.ID, t.NameRaw, t.NameNorm, toNullString(t.ContractType),
		t.TextChars, string(vectorJSON), t.CreatedAt,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrDuplicateName
		}
		return errors.NewInternal(err)
	}

	return nil
}

// isUniqueConstraintError checks if the error is a SQLite UNIQUE constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	// SQLite returns "UNIQUE constraint failed: ..." for unique violations
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// GetTemplateByName retrieves a template by its normalized name.
func GetTemplateByName(db *sql.DB, nameNorm string) (*Template, error) {
	row := db.QueryRow(`
		SELECT id, name_raw, name_norm, contract_type,
			text_chars, vector_json, created_at
		FROM templates
		WHERE name_norm = ?
	`, nameNorm)

	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, errors.NewNotFound(nameNorm)
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	return t, nil
}

// ListTemplates returns all templates, newest first. When contractType
// is non-empty only templates of that type are returned.
func ListTemplates(db *sql.DB, contractType string) ([]*Template, error) {
	query := `
		SELECT id, name_raw, name_norm, contract_type,
			text_chars, vector_json, created_at
		FROM templates
	`
	var args []any
	if contractType != "" {
		query += " WHERE contract_type = ?"
		args = append(args, contractType)
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	defer rows.Close()

	var templates []*Template
	for rows.Next() {
		t, err := scanTemplateRows(rows)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		templates = append(templates, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewInternal(err)
	}
	return templates, nil
}

// DeleteTemplate removes a template by id. Templates are reference
// data with no dependents, so the delete is hard.
func DeleteTemplate(db *sql.DB, id string) error {
	result, err := db.Exec(`DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return errors.NewInternal(err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return errors.NewInternal(err)
	}
	if rowsAffected == 0 {
		return errors.NewNotFound(id)
	}
	return nil
}

// CountTemplates reports the number of stored templates.
func CountTemplates(db *sql.DB) (int, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM templates`).Scan(&n); err != nil {
		return 0, errors.NewInternal(err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTemplate(row *sql.Row) (*Template, error)       { return scanFrom(row) }
func scanTemplateRows(rows *sql.Rows) (*Template, error) { return scanFrom(rows) }

func scanFrom(s rowScanner) (*Template, error) {
	var (
		t            Template
		contractType sql.NullString
		vectorJSON   string
	)
	err := s.Scan(
		&t.ID, &t.NameRaw, &t.NameNorm, &contractType,
		&t.TextChars, &vectorJSON, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if contractType.Valid {
		t.ContractType = contractType.String
	}
	if vectorJSON != "" {
		if err := json.Unmarshal([]byte(vectorJSON), &t.Vector); err != nil {
			return nil, err
		}
	}
	return &t, nil
}

// toNullString converts a string to sql.NullString, mapping empty to NULL.
func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
