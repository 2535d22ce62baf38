package solver

import (
	"fmt"

	"github.com/powellquiring/wordlehint/wordle"
)

// Simulate plays a game against answer with honest feedback and returns the
// guesses made, the last one being the answer. initialGuesses are played first,
// after that BestGuess picks. The engine is reset before and left at the end
// of the game.
func Simulate(e *Engine, answer string, initialGuesses []string) ([]string, error) {
	answer, err := wordle.Normalize(answer)
	if err != nil {
		return nil, err
	}
	if !e.bank.IsValid(answer) {
		return nil, fmt.Errorf("answer %q: %w", answer, wordle.ErrUnknownWord)
	}
	e.Reset()
	guesses := []string{}
	// every wrong guess removes at least itself from the candidates
	limit := len(initialGuesses) + e.bank.Len()
	for guessCount := range limit {
		var nextGuess string
		if guessCount < len(initialGuesses) {
			word, err := wordle.Normalize(initialGuesses[guessCount])
			if err != nil {
				return guesses, err
			}
			nextGuess = word
		} else {
			nextGuess, _ = e.BestGuess()
		}
		guesses = append(guesses, nextGuess)
		feedback := wordle.Score(answer, nextGuess)
		if wordle.Solved(feedback) {
			return guesses, nil
		}
		if err := e.Process(nextGuess, feedback); err != nil {
			return guesses, err
		}
	}
	return guesses, fmt.Errorf("answer %q not found after %d guesses", answer, len(guesses))
}
