// Package vault provides the PostgreSQL-backed repository for vault entries,
// including the paginated search/filter/sort query.
package vault

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/google/uuid"
)

const entryColumns = `id, owner_id, site_name, username, encrypted_secret, email, phone, notes, url, avatar_url, category, tags, favorite, last_used_at, created_at, updated_at`

// PostgresRepository implements entry storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new entry with a generated id. The entry's Secret must
// already be encrypted by the caller.
func (r *PostgresRepository) Create(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error) {
	entry.ID = uuid.NewString()

	tags, err := marshalTags(entry.Tags)
	if err != nil {
		return nil, err
	}

	query :=
		`INSERT INTO vault_entries (id, owner_id, site_name, username, encrypted_secret, email, phone, notes, url, avatar_url, category, tags, favorite)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 RETURNING created_at, updated_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		entry.ID, entry.OwnerID, entry.SiteName, entry.Username, entry.Secret,
		entry.Email, entry.Phone, entry.Notes, entry.URL, entry.AvatarURL,
		entry.Category, tags, entry.Favorite).
		Scan(&entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.VaultEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM vault_entries WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)

	entry, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return entry, nil
}

// Update replaces only the fields present in patch. An empty patch is a
// no-op. Missing rows surface as common.ErrNotFound.
func (r *PostgresRepository) Update(ctx context.Context, id string, patch *models.VaultEntryPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	set := make([]string, 0, 13)
	args := make([]any, 0, 14)

	add := func(column string, value any) {
		args = append(args, value)
		set = append(set, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.SiteName != nil {
		add("site_name", *patch.SiteName)
	}
	if patch.Username != nil {
		add("username", *patch.Username)
	}
	if patch.Secret != nil {
		add("encrypted_secret", *patch.Secret)
	}
	if patch.Email != nil {
		add("email", *patch.Email)
	}
	if patch.Phone != nil {
		add("phone", *patch.Phone)
	}
	if patch.Notes != nil {
		add("notes", *patch.Notes)
	}
	if patch.URL != nil {
		add("url", *patch.URL)
	}
	if patch.AvatarURL != nil {
		add("avatar_url", *patch.AvatarURL)
	}
	if patch.Category != nil {
		add("category", *patch.Category)
	}
	if patch.Tags != nil {
		tags, err := marshalTags(*patch.Tags)
		if err != nil {
			return err
		}
		add("tags", tags)
	}
	if patch.Favorite != nil {
		add("favorite", *patch.Favorite)
	}
	if patch.LastUsedAt != nil {
		add("last_used_at", *patch.LastUsedAt)
	}

	set = append(set, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf("UPDATE vault_entries SET %s WHERE id = $%d", strings.Join(set, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM vault_entries WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// List fetches one page of the owner's entries and the total match count in
// a single query via a window function, so pagination never needs a second
// round trip.
func (r *PostgresRepository) List(ctx context.Context, ownerID string, opts ListOptions) ([]*models.VaultEntry, int64, error) {
	page, limit := NormalizePage(opts.Page, opts.Limit)
	offset := (page - 1) * limit

	where := []string{"owner_id = $1"}
	args := []any{ownerID}

	if search := strings.TrimSpace(opts.Search); search != "" {
		args = append(args, "%"+escapeLike(search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			`(site_name ILIKE $%d OR username ILIKE $%d OR email ILIKE $%d OR notes ILIKE $%d OR EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag(value) WHERE tag.value ILIKE $%d))`,
			n, n, n, n, n))
	}

	if category := strings.TrimSpace(opts.Category); category != "" {
		args = append(args, category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}

	if opts.Favorite != nil {
		args = append(args, *opts.Favorite)
		where = append(where, fmt.Sprintf("favorite = $%d", len(args)))
	}

	if tags := cleanTags(opts.Tags); len(tags) > 0 {
		filter, err := marshalTags(tags)
		if err != nil {
			return nil, 0, err
		}
		args = append(args, filter)
		// Entries match when their tag set intersects the filter set.
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM jsonb_array_elements_text(tags) AS tag(value) WHERE tag.value IN (SELECT jsonb_array_elements_text($%d::jsonb)))`,
			len(args)))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT %s, COUNT(*) OVER() AS total FROM vault_entries WHERE %s %s LIMIT $%d OFFSET $%d`,
		entryColumns, strings.Join(where, " AND "), orderByClause(opts.SortBy, opts.SortOrder),
		len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.VaultEntry
	var total int64
	for rows.Next() {
		entry, err := scanEntry(rows.Scan, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan error: %w", err)
		}
		result = append(result, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	// The window-function total only travels with returned rows. When the
	// offset lands past the last match the page is empty, so count the
	// matches separately to keep the total honest.
	if len(result) == 0 && offset > 0 {
		countQuery := fmt.Sprintf(`SELECT count(*) FROM vault_entries WHERE %s`, strings.Join(where, " AND "))
		if err := r.db.QueryRowContext(ctx, countQuery, args[:len(args)-2]...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("db error: %w", err)
		}
	}

	return result, total, nil
}

// scanEntry reads one row into a VaultEntry. Extra destinations (e.g. the
// window-function total) are appended after the entry columns.
func scanEntry(scan func(dest ...any) error, extra ...any) (*models.VaultEntry, error) {
	entry := &models.VaultEntry{}
	var tagsRaw []byte
	var lastUsed sql.NullTime

	dest := []any{
		&entry.ID, &entry.OwnerID, &entry.SiteName, &entry.Username, &entry.Secret,
		&entry.Email, &entry.Phone, &entry.Notes, &entry.URL, &entry.AvatarURL,
		&entry.Category, &tagsRaw, &entry.Favorite, &lastUsed,
		&entry.CreatedAt, &entry.UpdatedAt,
	}
	dest = append(dest, extra...)

	if err := scan(dest...); err != nil {
		return nil, err
	}

	if len(tagsRaw) > 0 {
		if err := json.Unmarshal(tagsRaw, &entry.Tags); err != nil {
			return nil, fmt.Errorf("tags decode error: %w", err)
		}
	}
	if lastUsed.Valid {
		entry.LastUsedAt = &lastUsed.Time
	}

	return entry, nil
}

func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	doc, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("tags encode error: %w", err)
	}
	return string(doc), nil
}
