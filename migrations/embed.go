// Package migrations stores forward-only SQL migrations embedded into the binary.
package migrations

import "embed"

// DocStore holds the schema for the document-style store (users, capacity entries).
//
//go:embed docstore/*.sql
var DocStore embed.FS

// Actuals holds the schema for the relational store (actual entries, master plans).
//
//go:embed actuals/*.sql
var Actuals embed.FS
