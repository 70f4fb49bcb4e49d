package services

import "github.com/gcs-ops/notesweep/internal/core/domain"

// Candidates selects the ordered queue of note IDs to delete: deal notes
// owned by the target user that are not in the processed set. Pure
// predicate over the fetched collection; this is the single gate that
// makes re-running safe, because anything already handled is dropped
// here before it can reach the deletion pool.
func Candidates(notes []domain.Note, targetUserID string, progress *domain.Progress) []string {
	var ids []string
	for i := range notes {
		n := &notes[i]
		if !n.IsDealNote() || n.UserID != targetUserID {
			continue
		}
		if progress.IsProcessed(n.ID) {
			continue
		}
		ids = append(ids, n.ID)
	}
	return ids
}
