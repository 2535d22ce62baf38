// Package session keeps the history of one game on top of a solver.Engine so
// that attempts can be undone. A Session is not safe for concurrent use.
package session

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/powellquiring/wordlehint/solver"
	"github.com/powellquiring/wordlehint/wordle"
)

// Attempt is a guess and the pattern the game showed for it
type Attempt struct {
	Guess   string `json:"guess"`
	Pattern string `json:"pattern"`
}

// Result of submitting an attempt
type Result struct {
	Suggestion string
	Count      int
	// Eliminated words of the bank ruled out so far
	Eliminated int
	State      solver.State
	// Solved the pattern was all green, the engine was not consulted
	Solved bool
}

// Exhausted no word matches the feedback, it is inconsistent
func (r Result) Exhausted() bool {
	return !r.Solved && r.State == solver.Exhausted
}

type Session struct {
	engine   *solver.Engine
	attempts []Attempt
}

func New(engine *solver.Engine) *Session {
	return &Session{engine: engine}
}

func (s *Session) Engine() *solver.Engine {
	return s.engine
}

// Attempts returns a copy of the attempts processed so far
func (s *Session) Attempts() []Attempt {
	return append([]Attempt(nil), s.attempts...)
}

// Suggest returns the current recommendation without submitting anything
func (s *Session) Suggest() Result {
	word, count := s.engine.BestGuess()
	return Result{Suggestion: word, Count: count, Eliminated: s.engine.Bank().Len() - count, State: s.engine.State()}
}

// Submit validates guess and pattern and feeds them to the engine.
// A guess must be in the bank. An all green pattern only reports Solved.
func (s *Session) Submit(guess, pattern string) (Result, error) {
	attempt, entries, err := s.parse(guess, pattern)
	if err != nil {
		return Result{}, err
	}
	if wordle.Solved(entries) {
		count := s.engine.Count()
		return Result{
			Suggestion: attempt.Guess,
			Count:      count,
			Eliminated: s.engine.Bank().Len() - count,
			State:      s.engine.State(),
			Solved:     true,
		}, nil
	}
	if err := s.engine.Process(attempt.Guess, entries); err != nil {
		return Result{}, err
	}
	s.attempts = append(s.attempts, attempt)
	ret := s.Suggest()
	if ret.Exhausted() {
		log.Warn().Str("guess", attempt.Guess).Str("pattern", attempt.Pattern).Msg("no word matches, feedback is inconsistent")
	}
	return ret, nil
}

func (s *Session) parse(guess, pattern string) (Attempt, []wordle.Entry, error) {
	word, err := wordle.Normalize(guess)
	if err != nil {
		return Attempt{}, nil, err
	}
	if !s.engine.Bank().IsValid(word) {
		return Attempt{}, nil, fmt.Errorf("%q: %w", word, wordle.ErrUnknownWord)
	}
	entries, err := wordle.ParseFeedback(word, pattern)
	if err != nil {
		return Attempt{}, nil, err
	}
	return Attempt{Guess: word, Pattern: wordle.Pattern(entries)}, entries, nil
}

// Undo drops the last attempt and rebuilds the engine from the rest.
// It returns false when there is nothing to undo.
func (s *Session) Undo() bool {
	if len(s.attempts) == 0 {
		return false
	}
	remaining := s.attempts[:len(s.attempts)-1]
	s.engine.Reset()
	s.attempts = nil
	for _, attempt := range remaining {
		// already validated when first submitted
		entries, _ := wordle.ParseFeedback(attempt.Guess, attempt.Pattern)
		_ = s.engine.Process(attempt.Guess, entries)
		s.attempts = append(s.attempts, attempt)
	}
	return true
}

// Reset forgets every attempt
func (s *Session) Reset() {
	s.engine.Reset()
	s.attempts = nil
}

// Replay resets the session and submits attempts in order. It stops at the first
// invalid attempt and returns the result of the last one. An all green attempt
// ends the replay.
func (s *Session) Replay(attempts []Attempt) (Result, error) {
	s.Reset()
	ret := s.Suggest()
	for i, attempt := range attempts {
		var err error
		ret, err = s.Submit(attempt.Guess, attempt.Pattern)
		if err != nil {
			return Result{}, fmt.Errorf("attempt %d: %w", i+1, err)
		}
		if ret.Solved {
			break
		}
	}
	return ret, nil
}
