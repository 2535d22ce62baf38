package solver

import (
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// Constraints is everything learned from feedback so far.
//
// Green[2] = 'a' the third letter is an a
// Yellow letters somewhere in the word
// YellowNot['e'] positions the e is known not to be at, from present or absent tiles
// Gray letters not in the word. One feedback never makes a letter both gray and
// yellow, inconsistent feedback across guesses can.
type Constraints struct {
	Green     map[int]byte
	Yellow    mapset.Set // of byte
	YellowNot map[byte]mapset.Set // of int
	Gray      mapset.Set // of byte
}

func newConstraints() Constraints {
	return Constraints{
		Green:     make(map[int]byte),
		Yellow:    mapset.NewThreadUnsafeSet(),
		YellowNot: make(map[byte]mapset.Set),
		Gray:      mapset.NewThreadUnsafeSet(),
	}
}

func (c *Constraints) addGreen(position int, letter byte) {
	c.Green[position] = letter
}

func (c *Constraints) addYellow(position int, letter byte) {
	c.Yellow.Add(letter)
	c.excludePosition(position, letter)
}

// excludePosition records that letter is not at position. The set of positions
// for a letter is created on first use.
func (c *Constraints) excludePosition(position int, letter byte) {
	positions, ok := c.YellowNot[letter]
	if !ok {
		positions = mapset.NewThreadUnsafeSet()
		c.YellowNot[letter] = positions
	}
	positions.Add(position)
}

func (c *Constraints) addGray(letter byte) {
	c.Gray.Add(letter)
}

// Clone returns a deep copy
func (c Constraints) Clone() Constraints {
	ret := Constraints{
		Green:     make(map[int]byte, len(c.Green)),
		Yellow:    c.Yellow.Clone(),
		YellowNot: make(map[byte]mapset.Set, len(c.YellowNot)),
		Gray:      c.Gray.Clone(),
	}
	for position, letter := range c.Green {
		ret.Green[position] = letter
	}
	for letter, positions := range c.YellowNot {
		ret.YellowNot[letter] = positions.Clone()
	}
	return ret
}

// Equal compares every field
func (c Constraints) Equal(other Constraints) bool {
	if len(c.Green) != len(other.Green) || len(c.YellowNot) != len(other.YellowNot) {
		return false
	}
	for position, letter := range c.Green {
		if l, ok := other.Green[position]; !ok || l != letter {
			return false
		}
	}
	for letter, positions := range c.YellowNot {
		p, ok := other.YellowNot[letter]
		if !ok || !positions.Equal(p) {
			return false
		}
	}
	return c.Yellow.Equal(other.Yellow) && c.Gray.Equal(other.Gray)
}

// String prints the constraints like "green=..a.. yellow=e(2,3) gray=dps"
func (c Constraints) String() string {
	green := []byte(".....")
	for position, letter := range c.Green {
		if position >= 0 && position < len(green) {
			green[position] = letter
		}
	}
	var yellow []string
	for _, letter := range letters(c.Yellow) {
		var positions []string
		if set, ok := c.YellowNot[letter]; ok {
			for _, p := range sortedInts(set) {
				positions = append(positions, fmt.Sprint(p+1))
			}
		}
		yellow = append(yellow, fmt.Sprintf("%c(%s)", letter, strings.Join(positions, ",")))
	}
	return fmt.Sprintf("green=%s yellow=%s gray=%s", green, strings.Join(yellow, " "), letters(c.Gray))
}

// letters returns the byte members of set sorted
func letters(set mapset.Set) []byte {
	ret := make([]byte, 0, set.Cardinality())
	for _, member := range set.ToSlice() {
		ret = append(ret, member.(byte))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i] < ret[j] })
	return ret
}

func sortedInts(set mapset.Set) []int {
	ret := make([]int, 0, set.Cardinality())
	for _, member := range set.ToSlice() {
		ret = append(ret, member.(int))
	}
	sort.Ints(ret)
	return ret
}
