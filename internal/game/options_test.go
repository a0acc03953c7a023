package game

import (
	"math/rand"
	"testing"

	"wordrush/internal/models"
)

func TestBuildOptions(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	tests := []struct {
		name     string
		pool     []models.Question
		wantSize int
	}{
		{
			name:     "full pool yields four options",
			pool:     taggedPool(),
			wantSize: 4,
		},
		{
			name: "two-entry pool yields two options",
			pool: []models.Question{
				{ID: 1, Term: "perro", Translation: "dog"},
				{ID: 2, Term: "gato", Translation: "cat"},
			},
			wantSize: 2,
		},
		{
			name: "single entry yields only the correct translation",
			pool: []models.Question{
				{ID: 1, Term: "perro", Translation: "dog"},
			},
			wantSize: 1,
		},
		{
			name: "duplicate translations collapse",
			pool: []models.Question{
				{ID: 1, Term: "perro", Translation: "dog"},
				{ID: 2, Term: "can", Translation: "dog"},
				{ID: 3, Term: "gato", Translation: "cat"},
			},
			wantSize: 2, // "dog" duplicates are never usable distractors
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := tt.pool[0]
			opts := buildOptions(current, tt.pool, nil, rng)

			if len(opts) != tt.wantSize {
				t.Errorf("options length = %d, want %d", len(opts), tt.wantSize)
			}
			count := 0
			for _, o := range opts {
				if o == current.Translation {
					count++
				}
			}
			if count != 1 {
				t.Errorf("correct translation appears %d times, want exactly once", count)
			}
		})
	}
}

func TestBuildOptionsPrefersAllWords(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []models.Question{{ID: 1, Term: "perro", Translation: "dog"}}
	all := taggedPool()

	opts := buildOptions(words[0], words, all, rng)
	if len(opts) != 4 {
		t.Errorf("options length = %d, want 4 drawn from the full pool", len(opts))
	}
}

func TestBuildOptionsNeverRepeatsDistractor(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := taggedPool()

	for seed := int64(0); seed < 20; seed++ {
		rng.Seed(seed)
		opts := buildOptions(pool[0], pool, nil, rng)
		seen := map[string]bool{}
		for _, o := range opts {
			if seen[o] {
				t.Fatalf("seed %d: duplicate option %q in %v", seed, o, opts)
			}
			seen[o] = true
		}
	}
}
