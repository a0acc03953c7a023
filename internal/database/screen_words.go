package database

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const screenedWordsURL = "https://raw.githubusercontent.com/LDNOOBW/List-of-Dirty-Naughty-Obscene-and-Otherwise-Bad-Words/refs/heads/master/en"

// SeedScreenedWords fetches the word screening list and seeds the
// screened_words table on first startup. Player names are checked
// against this table before a session is created.
func (db *DB) SeedScreenedWords() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM screened_words").Scan(&count); err != nil {
		return fmt.Errorf("failed to check screened words count: %w", err)
	}

	if count > 0 {
		log.Debug().Int("count", count).Msg("name screening list already populated")
		return nil
	}

	log.Info().Msg("downloading name screening list")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(screenedWordsURL)
	if err != nil {
		return fmt.Errorf("failed to download screening list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from screening list URL: %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	wordsAdded := 0

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	insertQuery := db.Dialect.RewriteQuery("INSERT INTO screened_words (word) VALUES (?)")

	stmt, err := tx.Prepare(insertQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for scanner.Scan() {
		word := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if word == "" {
			continue
		}

		if _, err := stmt.Exec(word); err != nil {
			// Skip duplicates, continue adding others
			continue
		}
		wordsAdded++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading screening list: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info().Int("count", wordsAdded).Msg("name screening list populated")
	return nil
}

// IsScreenedWord checks if a word appears on the screening list.
func (db *DB) IsScreenedWord(word string) (bool, error) {
	cleanWord := strings.TrimSpace(strings.ToLower(word))

	var count int
	query := "SELECT COUNT(*) FROM screened_words WHERE word = ?"
	if err := db.QueryRow(query, cleanWord).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check screened word: %w", err)
	}

	return count > 0, nil
}

// ScreenName checks every token of a player name against the
// screening list and returns the offending tokens, if any.
func (db *DB) ScreenName(name string) ([]string, error) {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return nil, nil
	}

	var flagged []string
	for _, token := range tokens {
		screened, err := db.IsScreenedWord(token)
		if err != nil {
			return nil, err
		}
		if screened {
			flagged = append(flagged, token)
		}
	}

	return flagged, nil
}
