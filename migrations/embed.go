// Package migrations embeds the goose SQL migrations for the planner schema
// (trips, stops, activities). The API server applies them on start-up and
// the integration tests apply them in TestMain.
package migrations

import "embed"

// FS holds every *.sql migration, embedded at compile time.
//
//go:embed *.sql
var FS embed.FS
