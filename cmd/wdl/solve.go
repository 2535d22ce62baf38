package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/powellquiring/wordlehint/session"
	"github.com/powellquiring/wordlehint/wordle"
)

var (
	tile        = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("15"))
	tileCorrect = tile.Background(lipgloss.Color("2"))
	tilePresent = tile.Background(lipgloss.Color("3"))
	tileAbsent  = tile.Background(lipgloss.Color("8"))
	faint       = lipgloss.NewStyle().Faint(true)
)

// tiles renders a guess the way the game colors it
func tiles(guess, pattern string) string {
	entries, err := wordle.ParseFeedback(guess, pattern)
	if err != nil {
		return guess + " " + pattern
	}
	cells := make([]string, 0, len(entries))
	for _, entry := range entries {
		letter := strings.ToUpper(string(entry.Letter))
		switch entry.Status {
		case wordle.Correct:
			cells = append(cells, tileCorrect.Render(letter))
		case wordle.Present:
			cells = append(cells, tilePresent.Render(letter))
		default:
			cells = append(cells, tileAbsent.Render(letter))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

const solveHelp = `enter "<guess> <pattern>" with g green, y yellow, r gray, for example: crane rrgyr
commands: undo, reset, list, help, quit`

// repl runs the interactive solver until quit or end of input
func repl(in io.Reader, out io.Writer, s *session.Session, listLimit int) error {
	fmt.Fprintln(out, faint.Render(solveHelp))
	printSuggestion(out, s.Suggest())
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(out, faint.Render(solveHelp))
		case "reset":
			s.Reset()
			printSuggestion(out, s.Suggest())
		case "undo":
			if !s.Undo() {
				fmt.Fprintln(out, "nothing to undo")
				continue
			}
			printBoard(out, s)
			printSuggestion(out, s.Suggest())
		case "list":
			printList(out, s.Engine().Possible(), listLimit)
		default:
			if len(fields) != 2 {
				fmt.Fprintln(out, "expected <guess> <pattern>, try help")
				continue
			}
			ret, err := s.Submit(fields[0], fields[1])
			if err != nil {
				fmt.Fprintln(out, "error:", err)
				continue
			}
			if ret.Solved {
				fmt.Fprintln(out, tiles(ret.Suggestion, "ggggg"), "solved!")
				s.Reset()
				printSuggestion(out, s.Suggest())
				continue
			}
			printBoard(out, s)
			printSuggestion(out, ret)
		}
	}
}

func printBoard(out io.Writer, s *session.Session) {
	for _, attempt := range s.Attempts() {
		fmt.Fprintln(out, tiles(attempt.Guess, attempt.Pattern))
	}
}

func printSuggestion(out io.Writer, ret session.Result) {
	if ret.Exhausted() {
		fmt.Fprintln(out, "no word matches, the feedback is inconsistent: undo or reset")
		return
	}
	fmt.Fprintf(out, "suggestion: %s (%d possible, %d eliminated)\n", ret.Suggestion, ret.Count, ret.Eliminated)
}

func printList(out io.Writer, words []string, limit int) {
	if limit > 0 && len(words) > limit {
		fmt.Fprintln(out, strings.Join(words[:limit], " "), faint.Render(fmt.Sprintf("... %d more", len(words)-limit)))
		return
	}
	fmt.Fprintln(out, strings.Join(words, " "))
}
