// Package migrations embebe los esquemas SQL aplicados con goose al arranque.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
