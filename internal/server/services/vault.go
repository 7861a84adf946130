package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/dmitrijs2005/passvault/internal/common"
	"github.com/dmitrijs2005/passvault/internal/cryptox"
	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/logging"
	"github.com/dmitrijs2005/passvault/internal/server/models"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/vault"
	"github.com/google/uuid"
)

// VaultPage is one page of decrypted entries plus pagination totals.
type VaultPage struct {
	Results    []*models.VaultEntry
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// VaultService owns the credential entries of each account: create, read,
// update, delete, and the list query with search, filters, sorting, and
// pagination. Secrets are encrypted before they reach the repository and
// decrypted on the way out.
type VaultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	cipher      *cryptox.Cipher
	logger      logging.Logger
}

// NewVaultService constructs a VaultService over the given cipher and
// repositories.
func NewVaultService(db *sql.DB, m repomanager.RepositoryManager, cipher *cryptox.Cipher, logger logging.Logger) *VaultService {
	return &VaultService{
		db:          db,
		repomanager: m,
		cipher:      cipher,
		logger:      logger,
	}
}

// Create encrypts the secret and stores a new entry for ownerID. The
// returned entry carries the encrypted envelope in Secret; use FindByID to
// read the plaintext back.
func (s *VaultService) Create(ctx context.Context, ownerID string, entry *models.VaultEntry) (*models.VaultEntry, error) {
	if err := validateOwnerID(ownerID); err != nil {
		return nil, err
	}
	if entry.SiteName == "" || entry.Username == "" {
		return nil, fmt.Errorf("%w: siteName and username are required", common.ErrValidation)
	}
	if entry.Secret == "" {
		return nil, fmt.Errorf("%w: secret is required", common.ErrValidation)
	}

	envelope, err := s.cipher.Encrypt(entry.Secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCrypto, err)
	}
	entry.OwnerID = ownerID
	entry.Secret = envelope
	entry.Tags = dedupTags(entry.Tags)

	created, err := s.repomanager.Vault(s.db).Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %v", err)
	}
	s.logger.Info(ctx, "vault entry created", "entry_id", created.ID, "owner_id", ownerID)
	return created, nil
}

// FindByID returns the owner's entry with the secret decrypted. A missing
// entry yields common.ErrNotFound; someone else's entry yields
// common.ErrForbidden. An undecryptable envelope is replaced with the
// failure sentinel rather than reported as an error.
func (s *VaultService) FindByID(ctx context.Context, ownerID, id string) (*models.VaultEntry, error) {
	if err := validateOwnerID(ownerID); err != nil {
		return nil, err
	}
	if err := validateEntryID(id); err != nil {
		return nil, err
	}

	entry, err := s.getOwned(ctx, s.repomanager.Vault(s.db), ownerID, id)
	if err != nil {
		return nil, err
	}
	s.openSecret(ctx, entry)
	return entry, nil
}

// Update applies the patch to the owner's entry and returns the refreshed
// entry with the secret decrypted. A patch secret is encrypted first; an
// empty patch secret is treated as not provided.
func (s *VaultService) Update(ctx context.Context, ownerID, id string, patch *models.VaultEntryPatch) (*models.VaultEntry, error) {
	if err := validateOwnerID(ownerID); err != nil {
		return nil, err
	}
	if err := validateEntryID(id); err != nil {
		return nil, err
	}

	if patch.Secret != nil {
		if *patch.Secret == "" {
			patch.Secret = nil
		} else {
			envelope, err := s.cipher.Encrypt(*patch.Secret)
			if err != nil {
				return nil, fmt.Errorf("%w: %v", common.ErrCrypto, err)
			}
			patch.Secret = &envelope
		}
	}
	if patch.Tags != nil {
		tags := dedupTags(*patch.Tags)
		patch.Tags = &tags
	}

	var updated *models.VaultEntry
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Vault(tx)
		if _, err := s.getOwned(ctx, repo, ownerID, id); err != nil {
			return err
		}
		if err := repo.Update(ctx, id, patch); err != nil {
			return err
		}
		var getErr error
		updated, getErr = repo.GetByID(ctx, id)
		return getErr
	})
	if err != nil {
		return nil, err
	}

	s.openSecret(ctx, updated)
	return updated, nil
}

// Delete removes the owner's entry. Missing and foreign entries are
// reported the same way as FindByID.
func (s *VaultService) Delete(ctx context.Context, ownerID, id string) error {
	if err := validateOwnerID(ownerID); err != nil {
		return err
	}
	if err := validateEntryID(id); err != nil {
		return err
	}

	repo := s.repomanager.Vault(s.db)
	if _, err := s.getOwned(ctx, repo, ownerID, id); err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// List returns one page of the owner's entries matching the given options,
// with secrets decrypted. Corrupt envelopes do not fail the page; the
// affected entries carry the failure sentinel instead.
func (s *VaultService) List(ctx context.Context, ownerID string, opts vault.ListOptions) (*VaultPage, error) {
	if err := validateOwnerID(ownerID); err != nil {
		return nil, err
	}

	entries, total, err := s.repomanager.Vault(s.db).List(ctx, ownerID, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing entries: %v", err)
	}
	s.logger.Info(ctx, "vault entries listed", "owner_id", ownerID, "count", len(entries), "total", total)

	for _, entry := range entries {
		s.openSecret(ctx, entry)
	}

	page, limit := vault.NormalizePage(opts.Page, opts.Limit)
	return &VaultPage{
		Results:    entries,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// --- helpers below ---

func validateOwnerID(ownerID string) error {
	if _, err := uuid.Parse(ownerID); err != nil {
		return fmt.Errorf("%w: invalid owner id", common.ErrValidation)
	}
	return nil
}

// validateEntryID rejects ids that cannot hit the uuid-typed primary key,
// so a malformed id reads as a bad request instead of a database error.
func validateEntryID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid entry id", common.ErrValidation)
	}
	return nil
}

// getOwned fetches the entry and enforces ownership. The two failure modes
// stay distinct so handlers can answer 404 vs 403.
func (s *VaultService) getOwned(ctx context.Context, repo vault.Repository, ownerID, id string) (*models.VaultEntry, error) {
	entry, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, common.ErrInternal
	}
	if entry.OwnerID != ownerID {
		return nil, common.ErrForbidden
	}
	return entry, nil
}

// openSecret decrypts the entry's envelope in place, substituting the
// sentinel when the envelope cannot be opened.
func (s *VaultService) openSecret(ctx context.Context, entry *models.VaultEntry) {
	res := s.cipher.Open(entry.Secret)
	if !res.OK {
		s.logger.Warn(ctx, "failed to decrypt stored secret", "entry_id", entry.ID)
		entry.Secret = cryptox.DecryptionFailedSentinel
		return
	}
	entry.Secret = res.Value
}

func dedupTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
