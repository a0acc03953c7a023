package models

import "testing"

func TestQuestionHasLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    int
		expected bool
	}{
		{"untagged", 0, false},
		{"stage one", 1, true},
		{"later stage", 5, true},
		{"negative treated as untagged", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Question{Term: "el gato", Translation: "the cat", Level: tt.level}
			if got := q.HasLevel(); got != tt.expected {
				t.Errorf("HasLevel() with level %d = %v, want %v", tt.level, got, tt.expected)
			}
		})
	}
}
