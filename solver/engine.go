// Package solver tracks the constraints learned from wordle feedback, keeps the set
// of words still consistent with them and recommends the next guess.
//
// An Engine is owned by a single caller and is not safe for concurrent use. The
// Bank it reads is never modified and can be shared.
package solver

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog/log"

	"github.com/powellquiring/wordlehint/wordbank"
	"github.com/powellquiring/wordlehint/wordle"
)

// DefaultOpeners are strong first guesses, tried in order
var DefaultOpeners = []string{"soare", "roate", "raise", "slate", "crane", "stare"}

// DefaultSampleSize is the most candidates scored by one BestGuess call
const DefaultSampleSize = 20

// State of an engine
type State int

const (
	// Fresh no feedback processed since construction or Reset
	Fresh State = iota
	// Constrained feedback processed and some words remain
	Constrained
	// Exhausted no word matches the feedback, only Reset leaves this state
	Exhausted
)

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Constrained:
		return "constrained"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type Engine struct {
	bank        *wordbank.Bank
	rand        *rand.Rand
	openers     []string
	sampleSize  int
	constraints Constraints
	candidates  *bitset.BitSet
	batches     int
}

type Option func(*Engine)

// WithRand sets the source used to sample candidates in BestGuess
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rand = r
		}
	}
}

// WithSeed is WithRand with a new source seeded by seed
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

// WithOpeners replaces DefaultOpeners
func WithOpeners(openers []string) Option {
	return func(e *Engine) {
		e.openers = make([]string, 0, len(openers))
		for _, opener := range openers {
			e.openers = append(e.openers, strings.ToLower(strings.TrimSpace(opener)))
		}
	}
}

// WithSampleSize sets how many candidates BestGuess scores, values below 1 are ignored
func WithSampleSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.sampleSize = n
		}
	}
}

// New returns a fresh engine whose candidates are every word in bank
func New(bank *wordbank.Bank, opts ...Option) *Engine {
	ret := &Engine{
		bank:       bank,
		openers:    DefaultOpeners,
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.rand == nil {
		ret.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	ret.Reset()
	return ret
}

// Reset forgets all feedback
func (e *Engine) Reset() {
	e.constraints = newConstraints()
	e.candidates = e.bank.All()
	e.batches = 0
}

func (e *Engine) Bank() *wordbank.Bank {
	return e.bank
}

func (e *Engine) State() State {
	if e.batches == 0 {
		return Fresh
	}
	if e.candidates.Count() == 0 {
		return Exhausted
	}
	return Constrained
}

// Constraints returns a copy of the accumulated constraints
func (e *Engine) Constraints() Constraints {
	return e.constraints.Clone()
}

// Count is the number of candidates
func (e *Engine) Count() int {
	return int(e.candidates.Count())
}

// Possible returns the candidates sorted alphabetically
func (e *Engine) Possible() []string {
	return e.bank.Strings(e.candidates)
}

// Process adds the feedback for one guess to the constraints and recomputes the
// candidates from the whole universe.
//
// Correct and present entries are applied first. An absent letter is only grayed
// when the letter is not yellow and is not correct or present elsewhere in the same
// guess, otherwise the absent entry just rules out that position.
func (e *Engine) Process(guess string, feedback []wordle.Entry) error {
	entries, err := checkFeedback(feedback)
	if err != nil {
		return fmt.Errorf("guess %q: %w", guess, err)
	}

	var marked [26]bool
	for _, entry := range entries {
		switch entry.Status {
		case wordle.Correct:
			e.constraints.addGreen(entry.Position, entry.Letter)
			marked[entry.Letter-'a'] = true
		case wordle.Present:
			e.constraints.addYellow(entry.Position, entry.Letter)
			marked[entry.Letter-'a'] = true
		}
	}
	for _, entry := range entries {
		if entry.Status != wordle.Absent {
			continue
		}
		if marked[entry.Letter-'a'] || e.constraints.Yellow.Contains(entry.Letter) {
			e.constraints.excludePosition(entry.Position, entry.Letter)
			continue
		}
		e.constraints.addGray(entry.Letter)
	}
	e.batches++
	e.filter()
	log.Debug().Str("guess", guess).Str("feedback", wordle.Pattern(entries)).
		Int("candidates", e.Count()).Stringer("constraints", e.constraints).Msg("processed feedback")
	return nil
}

// checkFeedback returns a lower cased copy of feedback after checking it has one
// entry for each position
func checkFeedback(feedback []wordle.Entry) ([]wordle.Entry, error) {
	if len(feedback) != wordle.WordLength {
		return nil, fmt.Errorf("%d entries: %w", len(feedback), wordle.ErrFeedback)
	}
	ret := make([]wordle.Entry, len(feedback))
	var seen [wordle.WordLength]bool
	for i, entry := range feedback {
		if entry.Position < 0 || entry.Position >= wordle.WordLength || seen[entry.Position] {
			return nil, fmt.Errorf("position %d: %w", entry.Position, wordle.ErrFeedback)
		}
		seen[entry.Position] = true
		if entry.Letter >= 'A' && entry.Letter <= 'Z' {
			entry.Letter += 'a' - 'A'
		}
		if entry.Letter < 'a' || entry.Letter > 'z' {
			return nil, fmt.Errorf("letter %q: %w", entry.Letter, wordle.ErrFeedback)
		}
		if entry.Status > wordle.Correct {
			return nil, fmt.Errorf("status %v: %w", entry.Status, wordle.ErrFeedback)
		}
		ret[i] = entry
	}
	return ret, nil
}

// filter recomputes the candidates, starting from every word in the bank
func (e *Engine) filter() {
	ret := e.bank.All()
	// greens keep only words with the letter in that position
	for position, letter := range e.constraints.Green {
		ret.InPlaceIntersection(e.bank.At(position, letter))
	}
	// yellows keep words with the letter
	for _, member := range e.constraints.Yellow.ToSlice() {
		ret.InPlaceIntersection(e.bank.Has(member.(byte)))
	}
	// but not where it was already tried
	for letter, positions := range e.constraints.YellowNot {
		for _, position := range positions.ToSlice() {
			ret.InPlaceDifference(e.bank.At(position.(int), letter))
		}
	}
	// grays remove every word with the letter
	for _, member := range e.constraints.Gray.ToSlice() {
		ret.InPlaceDifference(e.bank.Has(member.(byte)))
	}
	e.candidates = ret
}

// Matches reports whether word satisfies every constraint.
// YellowNot is checked for every letter in it, including letters that are only
// there because an extra copy of a green letter was marked absent.
func (e *Engine) Matches(word string) bool {
	word = strings.ToLower(word)
	if len(word) != wordle.WordLength {
		return false
	}
	for position, letter := range e.constraints.Green {
		if word[position] != letter {
			return false
		}
	}
	for _, member := range e.constraints.Yellow.ToSlice() {
		if strings.IndexByte(word, member.(byte)) < 0 {
			return false
		}
	}
	for letter, positions := range e.constraints.YellowNot {
		for _, position := range positions.ToSlice() {
			if word[position.(int)] == letter {
				return false
			}
		}
	}
	for _, member := range e.constraints.Gray.ToSlice() {
		if strings.IndexByte(word, member.(byte)) >= 0 {
			return false
		}
	}
	return true
}

// BestGuess returns the recommended next guess and the number of candidates.
//
// No candidates returns "", 0 and a single candidate is returned as is. Before any
// feedback the first opener in the bank is returned. Otherwise up to sampleSize
// candidates are picked at random and the one with the best letter frequency score
// wins.
func (e *Engine) BestGuess() (string, int) {
	count := e.Count()
	switch count {
	case 0:
		return "", 0
	case 1:
		id, _ := e.candidates.NextSet(0)
		return e.bank.Word(id), 1
	}
	if e.batches == 0 {
		for _, opener := range e.openers {
			if e.bank.IsValid(opener) {
				return opener, count
			}
		}
	}

	ids := make([]uint, 0, count)
	for id, ok := e.candidates.NextSet(0); ok; id, ok = e.candidates.NextSet(id + 1) {
		ids = append(ids, id)
	}
	ids = e.sample(ids)

	best := e.bank.Word(ids[0])
	bestScore := e.bank.Score(best)
	for _, id := range ids[1:] {
		word := e.bank.Word(id)
		if score := e.bank.Score(word); score > bestScore {
			best, bestScore = word, score
		}
	}
	return best, count
}

// sample shuffles a random sampleSize subset of ids to the front and returns it
func (e *Engine) sample(ids []uint) []uint {
	n := len(ids)
	if n <= e.sampleSize {
		return ids
	}
	for i := range e.sampleSize {
		j := i + e.rand.Intn(n-i)
		ids[i], ids[j] = ids[j], ids[i]
	}
	return ids[:e.sampleSize]
}
