package migrations

import "embed"

//go:embed postgres/*.sql sqlite/*.sql
var Files embed.FS
