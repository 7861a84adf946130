package vault

import (
	"context"

	"github.com/dmitrijs2005/passvault/internal/server/models"
)

// ListOptions describes the page of entries to fetch for one owner.
// Zero Page/Limit fall back to the defaults; Limit is capped at MaxLimit.
type ListOptions struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string // "asc" or "desc"; anything else means descending
	Category  string
	Favorite  *bool
	Tags      []string
}

type Repository interface {
	Create(ctx context.Context, entry *models.VaultEntry) (*models.VaultEntry, error)
	// GetByID looks the entry up by id alone; ownership is enforced by the
	// service layer so that a foreign entry is distinguishable from a
	// missing one.
	GetByID(ctx context.Context, id string) (*models.VaultEntry, error)
	Update(ctx context.Context, id string, patch *models.VaultEntryPatch) error
	Delete(ctx context.Context, id string) error
	// List returns one page of the owner's entries together with the total
	// number of matches, computed in a single query.
	List(ctx context.Context, ownerID string, opts ListOptions) ([]*models.VaultEntry, int64, error)
}
