package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3" // imports as package "cli"

	"github.com/powellquiring/wordlehint/server"
	"github.com/powellquiring/wordlehint/session"
	"github.com/powellquiring/wordlehint/solver"
	"github.com/powellquiring/wordlehint/wordbank"
)

type GlobalConfiguration struct {
	bank     *wordbank.Bank
	config   Config
	progress bool
}

func (g GlobalConfiguration) newSession() *session.Session {
	return session.New(solver.New(g.bank, g.config.engineOptions()...))
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 2 * time.Minute}
}

// globalConfiguration loads the word lists, count limits the words to the first count.
// Missing lists are downloaded first when AutoFetch is on, a failed download leaves
// Load to fall back to the built in words.
func globalConfiguration(ctx context.Context, config Config, count int, progress bool) GlobalConfiguration {
	if config.AutoFetch {
		if _, err := wordbank.EnsureLists(ctx, httpClient(), config.DataDir, config.lists(), progress); err != nil {
			log.Warn().Err(err).Str("dir", config.DataDir).Msg("word list download failed, run wdl fetch")
		}
	}
	bank := wordbank.Load(ctx, wordbank.DataFiles(config.DataDir)...)
	if count > 0 && count < bank.Len() {
		bank = wordbank.New(bank.Words()[:count])
	}
	return GlobalConfiguration{bank: bank, config: config, progress: progress}
}

// playWordle with guess/pattern pairs provided
func playWordle(out io.Writer, globalConfig GlobalConfiguration, pairs []string) error {
	s := globalConfig.newSession()
	ret := s.Suggest()
	for i := 0; i < len(pairs); i += 2 {
		var err error
		ret, err = s.Submit(pairs[i], pairs[i+1])
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		if ret.Solved {
			fmt.Fprintln(out, "solved:", ret.Suggestion)
			return nil
		}
	}
	if ret.Exhausted() {
		return cli.Exit("no word matches, the feedback is inconsistent", 3)
	}
	fmt.Fprint(out, ret.Suggestion, ":")
	for _, word := range s.Engine().Possible() {
		fmt.Fprint(out, " ", word)
	}
	fmt.Fprintln(out)
	return nil
}

// simulate plays every solution and prints the games grouped by number of guesses
func simulate(out io.Writer, globalConfig GlobalConfiguration, firstWords []string, solutions []string) error {
	bank := globalConfig.bank
	if len(solutions) == 0 {
		solutions = bank.Words()
	}
	var bar *progressbar.ProgressBar
	if globalConfig.progress {
		bar = progressbar.Default(int64(len(solutions)), "simulating")
	} else {
		bar = progressbar.DefaultSilent(int64(len(solutions)), "simulating")
	}

	type Game struct {
		Solution string
		Guesses  []string
	}
	engine := solver.New(bank, globalConfig.config.engineOptions()...)
	sortedGames := make(map[int][]Game)
	for _, solution := range solutions {
		guesses, err := solver.Simulate(engine, strings.ToLower(solution), firstWords)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		sortedGames[len(guesses)] = append(sortedGames[len(guesses)], Game{solution, guesses})
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	keys := make([]int, 0, len(sortedGames))
	for k := range sortedGames {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	total := 0
	for _, numGuesses := range keys {
		games := sortedGames[numGuesses]
		total += numGuesses * len(games)
		fmt.Fprintln(out, numGuesses, len(games), "---------------------")
		for _, game := range games {
			fmt.Fprintln(out, game.Solution+":", strings.Join(game.Guesses, " "))
		}
	}
	fmt.Fprintf(out, "average %.3f guesses over %d games\n", float64(total)/float64(len(solutions)), len(solutions))
	return nil
}

func first(out io.Writer, globalConfig GlobalConfiguration, n int) {
	for _, scored := range globalConfig.bank.Ranked(n) {
		fmt.Fprintf(out, "%s %.4f\n", scored.Word, scored.Score)
	}
}

// setupLogging writes human readable logs to stderr at level
func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	return nil
}

func newCommand() *cli.Command {
	count := 0
	progress := false
	configPath := ""
	dataDir := ""
	seed := 0
	logLevel := ""
	autoFetch := true
	var config Config
	cmd := &cli.Command{
		Name:  "wdl",
		Usage: "wordle hints",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Usage:       "yaml config file",
				Sources:     cli.EnvVars("WDL_CONFIG"),
				Destination: &configPath,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Aliases:     []string{"d"},
				Usage:       "directory with " + wordbank.AnswersFile + " and " + wordbank.AllowedFile,
				Sources:     cli.EnvVars("WDL_DATA_DIR"),
				Destination: &dataDir,
			},
			&cli.IntFlag{
				Name:        "seed",
				Usage:       "seed for choosing among candidates, 0 is time based",
				Sources:     cli.EnvVars("WDL_SEED"),
				Destination: &seed,
			},
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "debug, info, warn or error",
				Sources:     cli.EnvVars("WDL_LOG_LEVEL"),
				Destination: &logLevel,
			},
			&cli.BoolFlag{
				Name:        "auto-fetch",
				Value:       true,
				Usage:       "download the word lists when they are missing from the data directory",
				Sources:     cli.EnvVars("WDL_AUTO_FETCH"),
				Destination: &autoFetch,
			},
			&cli.IntFlag{
				Name:        "count",
				Value:       0,
				Aliases:     []string{"c"},
				Usage:       "number of words, 0 is all words",
				Destination: &count,
			},
			&cli.BoolFlag{
				Name:        "progress",
				Value:       false,
				Aliases:     []string{"p"},
				Usage:       "show progress bar",
				Destination: &progress,
			},
		},
		// flags and environment win over the config file
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			var err error
			if config, err = loadConfig(configPath); err != nil {
				return ctx, cli.Exit(err.Error(), 1)
			}
			if cmd.IsSet("data-dir") {
				config.DataDir = dataDir
			}
			if cmd.IsSet("seed") {
				config.Seed = int64(seed)
			}
			if cmd.IsSet("auto-fetch") {
				config.AutoFetch = autoFetch
			}
			if cmd.IsSet("log-level") {
				config.LogLevel = logLevel
			}
			if err := setupLogging(config.LogLevel); err != nil {
				return ctx, cli.Exit(err.Error(), 1)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name: "play",
				Usage: `play guess pattern [guess pattern]...
				print the suggested next guess followed by every possible word.
				patterns use g green, y yellow and r gray, for example: wdl play crane rrgyr`,
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if cmd.NArg()%2 != 0 {
						return cli.Exit("must have pairs of guess pattern", 1)
					} else if cmd.NArg() < 2 {
						return cli.Exit("must have at least one guess pattern", 2)
					}
					return playWordle(cmd.Root().Writer, globalConfiguration(ctx, config, count, progress), cmd.Args().Slice())
				},
			},
			{
				Name:  "solve",
				Usage: "interactive solver, enter the guesses and the colors the game shows",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "list",
						Value: 100,
						Usage: "most words printed by the list command, 0 is all",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					g := globalConfiguration(ctx, config, count, progress)
					return repl(os.Stdin, cmd.Root().Writer, g.newSession(), cmd.Int("list"))
				},
			},
			{
				Name: "sim",
				Usage: `sim [--first word]... [solution]...
				Simulate a game for each solution, every game starts with the first words in order.
				If no solutions are provided, simulate solutions for all words.  All words can be cut
				back by using the --count global flag for testing.`,
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Usage:   "--first first1 --first first2 ...",
						Name:    "first",
						Aliases: []string{"f"},
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return simulate(cmd.Root().Writer, globalConfiguration(ctx, config, count, progress), cmd.StringSlice("first"), cmd.Args().Slice())
				},
			},
			{
				Name: "first",
				Usage: `first
				Sort first words by letter frequency score`,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "number",
						Aliases: []string{"n"},
						Value:   20,
						Usage:   "number of words, 0 is all",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					first(cmd.Root().Writer, globalConfiguration(ctx, config, count, progress), cmd.Int("number"))
					return nil
				},
			},
			{
				Name:  "fetch",
				Usage: "download the answer and allowed guess lists into the data directory",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					if err := wordbank.DownloadLists(ctx, httpClient(), config.DataDir, config.lists(), progress); err != nil {
						return cli.Exit(err.Error(), 1)
					}
					log.Info().Str("dir", config.DataDir).Msg("word lists downloaded")
					return nil
				},
			},
			{
				Name:  "serve",
				Usage: "serve the hint api over http",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "listen address, default from config or :5175",
						Sources: cli.EnvVars("WDL_ADDR"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					addr := config.Addr
					if cmd.IsSet("addr") {
						addr = cmd.String("addr")
					}
					g := globalConfiguration(ctx, config, count, progress)
					s := server.New(g.bank, server.Config{Seed: config.Seed, Openers: config.Openers, SampleSize: config.SampleSize})
					return s.Start(addr)
				},
			},
		},
	}
	return cmd
}

func main() {
	// .env only fills variables that are not already set
	_ = godotenv.Load()
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("wdl")
	}
}
