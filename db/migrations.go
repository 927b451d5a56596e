// Package db ships the SQL migrations embedded into the binaries.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
