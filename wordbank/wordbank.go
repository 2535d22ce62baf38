// Package wordbank holds the universe of legal words and the letter statistics
// derived from it. A Bank is immutable once built and can be shared between
// goroutines.
package wordbank

import (
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/powellquiring/wordlehint/wordle"
)

// Frequency is the fraction of words containing each letter a-z at least once
type Frequency [26]float64

// Of returns the frequency of letter, 0 for anything outside a-z
func (f Frequency) Of(letter byte) float64 {
	if letter < 'a' || letter > 'z' {
		return 0
	}
	return f[letter-'a']
}

// Bank is the set of all words and an index of them.
//
// Words are kept sorted, a word's id is its index into that order so iterating a
// bitset of ids visits words alphabetically.
//
// at[2]['a'-'a'] set of words whose third letter is an a
// has['b'-'a'] set of words with one or more b
type Bank struct {
	words []string
	ids   map[string]int
	freq  Frequency
	all   *bitset.BitSet
	at    [wordle.WordLength][26]*bitset.BitSet
	has   [26]*bitset.BitSet
}

// New builds a bank from words. Each word is trimmed and lower cased, anything that
// is not 5 letters a-z is dropped and duplicates collapse to one entry.
func New(words []string) *Bank {
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		word, err := wordle.Normalize(w)
		if err != nil {
			continue
		}
		unique[word] = struct{}{}
	}
	sorted := make([]string, 0, len(unique))
	for word := range unique {
		sorted = append(sorted, word)
	}
	sort.Strings(sorted)

	ret := &Bank{words: sorted, ids: make(map[string]int, len(sorted))}
	n := uint(len(sorted))
	ret.all = bitset.New(n).Complement()
	for l := range 26 {
		ret.has[l] = bitset.New(n)
		for p := range wordle.WordLength {
			ret.at[p][l] = bitset.New(n)
		}
	}
	var counts [26]int
	for id, word := range sorted {
		ret.ids[word] = id
		var seen [26]bool
		for p := range wordle.WordLength {
			l := word[p] - 'a'
			ret.at[p][l].Set(uint(id))
			if !seen[l] {
				seen[l] = true
				ret.has[l].Set(uint(id))
				counts[l]++
			}
		}
	}
	ret.freq = computeFrequencies(counts, len(sorted))
	return ret
}

// computeFrequencies divides the per letter word counts by the universe size
func computeFrequencies(counts [26]int, total int) Frequency {
	var ret Frequency
	if total == 0 {
		return ret
	}
	for l, count := range counts {
		ret[l] = float64(count) / float64(total)
	}
	return ret
}

func (b *Bank) Len() int {
	return len(b.words)
}

// Words returns a copy of the sorted universe
func (b *Bank) Words() []string {
	ret := make([]string, len(b.words))
	copy(ret, b.words)
	return ret
}

func (b *Bank) Word(id uint) string {
	return b.words[id]
}

func (b *Bank) ID(word string) (uint, bool) {
	id, ok := b.ids[word]
	return uint(id), ok
}

func (b *Bank) Frequency() Frequency {
	return b.freq
}

// IsValid reports whether word is in the universe, ignoring case and surrounding space
func (b *Bank) IsValid(word string) bool {
	normalized, err := wordle.Normalize(word)
	if err != nil {
		return false
	}
	_, ok := b.ids[normalized]
	return ok
}

// Score is the sum of the frequencies of the distinct letters in word.
// A repeated letter only counts once.
func (b *Bank) Score(word string) float64 {
	var seen [26]bool
	score := 0.0
	for i := 0; i < len(word); i++ {
		letter := word[i]
		if letter >= 'A' && letter <= 'Z' {
			letter += 'a' - 'A'
		}
		if letter < 'a' || letter > 'z' || seen[letter-'a'] {
			continue
		}
		seen[letter-'a'] = true
		score += b.freq[letter-'a']
	}
	return score
}

// All returns a new set holding every word id
func (b *Bank) All() *bitset.BitSet {
	return b.all.Clone()
}

// At is the set of words with letter at position. The set is shared, do not modify it.
func (b *Bank) At(position int, letter byte) *bitset.BitSet {
	return b.at[position][letter-'a']
}

// Has is the set of words containing letter. The set is shared, do not modify it.
func (b *Bank) Has(letter byte) *bitset.BitSet {
	return b.has[letter-'a']
}

// Strings converts a set of ids into words, in alphabetical order
func (b *Bank) Strings(ids *bitset.BitSet) []string {
	ret := make([]string, 0, ids.Count())
	for id, ok := ids.NextSet(0); ok; id, ok = ids.NextSet(id + 1) {
		ret = append(ret, b.words[id])
	}
	return ret
}
