package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionStatusValid(t *testing.T) {
	assert.True(t, SessionStatusActive.Valid())
	assert.True(t, SessionStatusArchived.Valid())
	assert.False(t, SessionStatus("").Valid())
	assert.False(t, SessionStatus("deleted").Valid())
}

func TestSessionStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from SessionStatus
		to   SessionStatus
		want bool
	}{
		{name: "active to archived", from: SessionStatusActive, to: SessionStatusArchived, want: true},
		{name: "archived to active", from: SessionStatusArchived, to: SessionStatusActive, want: true},
		{name: "active to active", from: SessionStatusActive, to: SessionStatusActive, want: true},
		{name: "archived to archived", from: SessionStatusArchived, to: SessionStatusArchived, want: true},
		{name: "unknown source", from: SessionStatus("deleted"), to: SessionStatusActive, want: false},
		{name: "unknown target", from: SessionStatusActive, to: SessionStatus("deleted"), want: false},
		{name: "empty source", from: SessionStatus(""), to: SessionStatusArchived, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}
