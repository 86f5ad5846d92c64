package repomanager

import (
	"context"
	"database/sql"

	"picvault/internal/dbx"
	"picvault/internal/server/repositories/images"
	"picvault/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Images(db dbx.DBTX) images.Repository
}
