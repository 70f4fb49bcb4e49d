package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeleteResult_Succeeded(t *testing.T) {
	tests := []struct {
		name   string
		result DeleteResult
		want   bool
	}{
		{
			name:   "deleted counts as success",
			result: DeleteResult{NoteID: "n1", Status: StatusDeleted},
			want:   true,
		},
		{
			name:   "already gone counts as success",
			result: DeleteResult{NoteID: "n2", Status: StatusAlreadyGone},
			want:   true,
		},
		{
			name:   "failed is not success",
			result: DeleteResult{NoteID: "n3", Status: StatusFailed, Reason: FailTransient, Err: errors.New("boom")},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Succeeded())
		})
	}
}

func TestNote_IsDealNote(t *testing.T) {
	deal := Note{ID: "1", Rel: RelDeal}
	contact := Note{ID: "2", Rel: RelContact}

	assert.True(t, deal.IsDealNote())
	assert.False(t, contact.IsDealNote())
}
