// Package migrations contiene el esquema SQL versionado que se aplica al arrancar.
package migrations

import "embed"

// FS archivos *.up.sql en orden lexicográfico.
//
//go:embed *.up.sql
var FS embed.FS
