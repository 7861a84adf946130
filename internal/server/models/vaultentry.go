package models

import "time"

// VaultEntry is a stored site credential. Secret holds the encrypted
// envelope at rest; read paths replace it with the decrypted value (or the
// decryption-failure sentinel). OwnerID is immutable after creation.
type VaultEntry struct {
	ID         string
	OwnerID    string
	SiteName   string
	Username   string
	Secret     string
	Email      string
	Phone      string
	Notes      string
	URL        string
	AvatarURL  string
	Category   string
	Tags       []string
	Favorite   bool
	LastUsedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// VaultEntryPatch lists the fields an update may replace. Nil fields keep
// their stored values.
type VaultEntryPatch struct {
	SiteName   *string
	Username   *string
	Secret     *string
	Email      *string
	Phone      *string
	Notes      *string
	URL        *string
	AvatarURL  *string
	Category   *string
	Tags       *[]string
	Favorite   *bool
	LastUsedAt *time.Time
}

// IsEmpty reports whether the patch carries no fields at all.
func (p *VaultEntryPatch) IsEmpty() bool {
	return p.SiteName == nil && p.Username == nil && p.Secret == nil &&
		p.Email == nil && p.Phone == nil && p.Notes == nil &&
		p.URL == nil && p.AvatarURL == nil && p.Category == nil &&
		p.Tags == nil && p.Favorite == nil && p.LastUsedAt == nil
}
