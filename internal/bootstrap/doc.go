// Package bootstrap orchestrates the environment bootstrap run for the
// resolve-mcp server: interpreter discovery, project precondition checks,
// dependency installation, native OCR tool installation, and per-dependency
// verification.
//
// Two failure classes exist. Precondition failures (no interpreter, wrong
// project directory, a concurrent run holding the lock) abort immediately
// and surface as a returned error. Every later check is advisory: its
// outcome is recorded as a Result and the run always continues to the
// summary, so a half-broken environment still yields a complete picture of
// what is missing.
package bootstrap
