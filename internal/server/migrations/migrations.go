// Package migrations embeds the SQL schema migrations applied by the
// repository managers at startup, one dialect directory per backend.
package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS
