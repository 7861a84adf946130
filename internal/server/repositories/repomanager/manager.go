package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/passvault/internal/dbx"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/passvault/internal/server/repositories/vault"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run the same repository code on a plain connection or inside
// a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
	Vault(db dbx.DBTX) vault.Repository
}
