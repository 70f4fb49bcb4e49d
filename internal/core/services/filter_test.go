package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gcs-ops/notesweep/internal/core/domain"
)

func TestCandidates_FiltersByOwnerAndKind(t *testing.T) {
	notes := []domain.Note{
		{ID: "1", UserID: "112", Rel: domain.RelDeal},
		{ID: "2", UserID: "112", Rel: domain.RelContact}, // wrong kind
		{ID: "3", UserID: "7", Rel: domain.RelDeal},      // wrong owner
		{ID: "4", UserID: "112", Rel: domain.RelDeal},
	}

	ids := Candidates(notes, "112", domain.NewProgress())

	assert.Equal(t, []string{"1", "4"}, ids)
}

func TestCandidates_SkipsProcessed(t *testing.T) {
	notes := []domain.Note{
		{ID: "1", UserID: "112", Rel: domain.RelDeal},
		{ID: "2", UserID: "112", Rel: domain.RelDeal},
	}
	progress := domain.NewProgress()
	progress.MarkProcessed("1")

	ids := Candidates(notes, "112", progress)

	assert.Equal(t, []string{"2"}, ids)
}

func TestCandidates_NeverReselectsProcessed(t *testing.T) {
	// Idempotence: once everything is processed the filter yields nothing,
	// no matter how often the same collection is refetched.
	notes := []domain.Note{
		{ID: "1", UserID: "112", Rel: domain.RelDeal},
		{ID: "2", UserID: "112", Rel: domain.RelDeal},
	}
	progress := domain.NewProgress()
	for _, id := range Candidates(notes, "112", progress) {
		progress.MarkProcessed(id)
	}

	assert.Empty(t, Candidates(notes, "112", progress))
	assert.Empty(t, Candidates(notes, "112", progress))
}

func TestCandidates_Scenario(t *testing.T) {
	// 250 fetched records: 200 matching owner and kind, 50 not, with 50
	// of the matching ones already processed. Exactly 150 remain.
	var notes []domain.Note
	progress := domain.NewProgress()

	for i := 0; i < 200; i++ {
		id := fmt.Sprintf("match-%d", i)
		notes = append(notes, domain.Note{ID: id, UserID: "112", Rel: domain.RelDeal})
		if i < 50 {
			progress.MarkProcessed(id)
		}
	}
	for i := 0; i < 50; i++ {
		notes = append(notes, domain.Note{ID: fmt.Sprintf("other-%d", i), UserID: "99", Rel: domain.RelDeal})
	}

	ids := Candidates(notes, "112", progress)

	assert.Len(t, ids, 150)
}
