package wordle

import (
	"errors"
	"fmt"
	"strings"
)

// WordLength is the number of letters in every word
const WordLength = 5

var (
	ErrWordLength   = errors.New("word must be exactly 5 letters")
	ErrWordChar     = errors.New("word must only contain letters a-z")
	ErrStatusSymbol = errors.New("pattern must only contain g, y or r/b")
	ErrUnknownWord  = errors.New("word not in dictionary")
	ErrFeedback     = errors.New("invalid feedback")
)

// Status is the color of one tile
type Status uint8

const (
	Absent Status = iota
	Present
	Correct
)

func (s Status) String() string {
	switch s {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// Symbol is the pattern character used when printing a status
func (s Status) Symbol() byte {
	switch s {
	case Correct:
		return 'g'
	case Present:
		return 'y'
	}
	return 'r'
}

// Entry is the observed outcome for the letter at Position of a guess
type Entry struct {
	Letter   byte
	Status   Status
	Position int
}

// Normalize lower cases and trims s and checks that it is a 5 letter word
func Normalize(s string) (string, error) {
	word := strings.ToLower(strings.TrimSpace(s))
	if len(word) != WordLength {
		return "", fmt.Errorf("%q: %w", s, ErrWordLength)
	}
	if !IsAlpha(word) {
		return "", fmt.Errorf("%q: %w", s, ErrWordChar)
	}
	return word, nil
}

// IsAlpha reports whether s is all lowercase ASCII letters.
func IsAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

// ParsePattern turns a pattern like "rrgyr" into statuses.
// g is correct, y is present and r, b, x or . are absent. Case is ignored.
func ParsePattern(pattern string) ([]Status, error) {
	pattern = strings.TrimSpace(pattern)
	if len(pattern) != WordLength {
		return nil, fmt.Errorf("pattern %q: %w", pattern, ErrWordLength)
	}
	ret := make([]Status, 0, WordLength)
	for _, color := range strings.ToLower(pattern) {
		switch color {
		case 'g':
			ret = append(ret, Correct)
		case 'y':
			ret = append(ret, Present)
		case 'r', 'b', 'x', '.':
			ret = append(ret, Absent)
		default:
			return nil, fmt.Errorf("pattern %q has %q: %w", pattern, color, ErrStatusSymbol)
		}
	}
	return ret, nil
}

// Entries pairs the letters of guess with statuses
func Entries(guess string, statuses []Status) ([]Entry, error) {
	if len(guess) != WordLength || len(statuses) != WordLength {
		return nil, fmt.Errorf("%q: %w", guess, ErrWordLength)
	}
	ret := make([]Entry, WordLength)
	for i := range WordLength {
		ret[i] = Entry{Letter: guess[i], Status: statuses[i], Position: i}
	}
	return ret, nil
}

// ParseFeedback is ParsePattern followed by Entries
func ParseFeedback(guess, pattern string) ([]Entry, error) {
	statuses, err := ParsePattern(pattern)
	if err != nil {
		return nil, err
	}
	return Entries(guess, statuses)
}

// Pattern prints entries in the g/y/r alphabet
func Pattern(entries []Entry) string {
	var b strings.Builder
	for _, entry := range entries {
		b.WriteByte(entry.Status.Symbol())
	}
	return b.String()
}

// Solved is true when every entry is correct
func Solved(entries []Entry) bool {
	if len(entries) == 0 {
		return false
	}
	for _, entry := range entries {
		if entry.Status != Correct {
			return false
		}
	}
	return true
}

// Score returns the feedback the game gives for guess when the solution is answer.
// Greens are marked first, then yellows are handed out left to right while the
// answer still has unmatched copies of the letter.
func Score(answer, guess string) []Entry {
	ret := make([]Entry, WordLength)
	var answerNotGreenCount [26]int
	for i := range WordLength {
		ret[i] = Entry{Letter: guess[i], Status: Absent, Position: i}
		if answer[i] == guess[i] {
			ret[i].Status = Correct
		} else {
			answerNotGreenCount[answer[i]-'a']++
		}
	}
	// turn the absent to present if in the word but not green
	for i := range WordLength {
		if ret[i].Status == Correct {
			continue
		}
		letter := guess[i] - 'a'
		if answerNotGreenCount[letter] > 0 {
			ret[i].Status = Present
			answerNotGreenCount[letter]--
		}
	}
	return ret
}
