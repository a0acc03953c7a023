package game

import (
	"math/rand"

	"github.com/samber/lo"

	"wordrush/internal/models"
)

// buildOptions assembles the multiple-choice set for the current
// question: up to three distractor translations drawn without
// replacement from the reference pool, shuffled together with the
// correct translation. The result always contains the correct
// translation exactly once; when fewer than three distinct distractors
// exist the set is simply smaller.
func buildOptions(current models.Question, words, allWords []models.Question, rng *rand.Rand) []string {
	pool := allWords
	if len(pool) == 0 {
		pool = words
	}

	candidates := lo.Filter(pool, func(q models.Question, _ int) bool {
		return q.ID != current.ID && q.Translation != current.Translation
	})
	distractors := lo.UniqBy(candidates, func(q models.Question) string {
		return q.Translation
	})

	rng.Shuffle(len(distractors), func(i, j int) {
		distractors[i], distractors[j] = distractors[j], distractors[i]
	})
	if len(distractors) > 3 {
		distractors = distractors[:3]
	}

	options := make([]string, 0, len(distractors)+1)
	options = append(options, current.Translation)
	for _, d := range distractors {
		options = append(options, d.Translation)
	}
	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}
