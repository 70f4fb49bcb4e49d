// Package services implements the core application logic for notesweep:
// the candidate filter, the rate-limited deletion pool, and the purge
// run controller that sequences fetch, filter, delete and persist.
//
// Services depend only on domain types and ports, never on concrete
// adapters.
package services
