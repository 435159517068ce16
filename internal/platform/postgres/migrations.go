package postgres

import "embed"

// MigrationsFS holds the embedded SQL migrations, applied in lexical order
// by goose. Embedding keeps the binary self-contained; there is no
// migrations directory to locate at runtime.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrationsDir is the path of the migration files inside MigrationsFS.
const MigrationsDir = "migrations"
