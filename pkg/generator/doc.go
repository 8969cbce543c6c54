// Package generator is the entry point used by the CLI and the HTTP server.
// It owns the loaded resources (overlay table, item atlas, skin directory),
// applies configured defaults and runs every request under a request id and
// a time budget.
package generator
