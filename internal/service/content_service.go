package service

import (
	"github.com/rs/zerolog/log"

	"wordrush/internal/models"
	"wordrush/internal/repository"
)

// ContentService supplies the question pools sessions are built from.
// Words live in the database; when a difficulty tier has no rows the
// built-in starter set is used instead, so a fresh install can play
// immediately.
type ContentService struct {
	wordRepo *repository.WordRepository
}

// NewContentService creates a new content service
func NewContentService(wordRepo *repository.WordRepository) *ContentService {
	return &ContentService{wordRepo: wordRepo}
}

// EnsureSeeded populates the words table with the starter set when it
// is empty.
func (s *ContentService) EnsureSeeded() error {
	count, err := s.wordRepo.CountWords()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := s.wordRepo.SeedWords("beginner", starterWords()); err != nil {
		return err
	}

	log.Info().Int("count", len(starterWords())).Msg("seeded starter word set")
	return nil
}

// WordsForDifficulty returns the question pool for a difficulty tier,
// falling back to the starter set when the tier is empty.
func (s *ContentService) WordsForDifficulty(difficulty string) ([]models.Question, error) {
	if difficulty == "" {
		difficulty = "beginner"
	}

	if s.wordRepo == nil {
		return starterWords(), nil
	}

	words, err := s.wordRepo.GetWordsByDifficulty(difficulty)
	if err != nil {
		log.Warn().Err(err).Str("difficulty", difficulty).Msg("word lookup failed, using starter set")
		return starterWords(), nil
	}

	if len(words) == 0 {
		log.Debug().Str("difficulty", difficulty).Msg("no words for difficulty, using starter set")
		return starterWords(), nil
	}

	return words, nil
}

// starterWords is the built-in Spanish-English fallback pool. Levels
// group words into the stages normal mode walks through.
func starterWords() []models.Question {
	return []models.Question{
		{ID: -1, Term: "el gato", Translation: "the cat", Pronunciation: "ehl GAH-toh", Example: "El gato duerme en el sofá.", Level: 1},
		{ID: -2, Term: "el perro", Translation: "the dog", Pronunciation: "ehl PEH-rroh", Example: "El perro corre por el parque.", Level: 1},
		{ID: -3, Term: "la casa", Translation: "the house", Pronunciation: "lah KAH-sah", Example: "La casa es grande.", Level: 1},
		{ID: -4, Term: "el agua", Translation: "the water", Pronunciation: "ehl AH-gwah", Example: "El agua está fría.", Level: 1},
		{ID: -5, Term: "el libro", Translation: "the book", Pronunciation: "ehl LEE-broh", Example: "Leo un libro cada noche.", Level: 2},
		{ID: -6, Term: "la mesa", Translation: "the table", Pronunciation: "lah MEH-sah", Example: "La mesa está en la cocina.", Level: 2},
		{ID: -7, Term: "el pan", Translation: "the bread", Pronunciation: "ehl pahn", Example: "Compro pan por la mañana.", Level: 2},
		{ID: -8, Term: "la leche", Translation: "the milk", Pronunciation: "lah LEH-cheh", Example: "La leche está en la nevera.", Level: 2},
		{ID: -9, Term: "la ventana", Translation: "the window", Pronunciation: "lah behn-TAH-nah", Example: "Abro la ventana por la mañana.", Level: 3},
		{ID: -10, Term: "la puerta", Translation: "the door", Pronunciation: "lah PWEHR-tah", Example: "Cierra la puerta, por favor.", Level: 3},
		{ID: -11, Term: "el coche", Translation: "the car", Pronunciation: "ehl KOH-cheh", Example: "El coche es rojo.", Level: 3},
		{ID: -12, Term: "la ciudad", Translation: "the city", Pronunciation: "lah see-oo-DAHD", Example: "La ciudad nunca duerme.", Level: 3},
		{ID: -13, Term: "el tiempo", Translation: "the weather", Pronunciation: "ehl tee-EHM-poh", Example: "El tiempo está soleado hoy.", Level: 4},
		{ID: -14, Term: "la escuela", Translation: "the school", Pronunciation: "lah ehs-KWEH-lah", Example: "Los niños van a la escuela.", Level: 4},
		{ID: -15, Term: "el trabajo", Translation: "the work", Pronunciation: "ehl trah-BAH-hoh", Example: "Voy al trabajo en tren.", Level: 4},
		{ID: -16, Term: "la comida", Translation: "the food", Pronunciation: "lah koh-MEE-dah", Example: "La comida está lista.", Level: 4},
		{ID: -17, Term: "el amigo", Translation: "the friend", Pronunciation: "ehl ah-MEE-goh", Example: "Mi amigo vive cerca.", Level: 5},
		{ID: -18, Term: "la familia", Translation: "the family", Pronunciation: "lah fah-MEE-lee-ah", Example: "Mi familia es pequeña.", Level: 5},
		{ID: -19, Term: "el dinero", Translation: "the money", Pronunciation: "ehl dee-NEH-roh", Example: "No tengo dinero en efectivo.", Level: 5},
		{ID: -20, Term: "la noche", Translation: "the night", Pronunciation: "lah NOH-cheh", Example: "La noche está tranquila.", Level: 5},
	}
}
