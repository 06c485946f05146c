package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordgrid/assets"
	"github.com/robalobadob/wordgrid/internal/cli"
	"github.com/robalobadob/wordgrid/internal/config"
	"github.com/robalobadob/wordgrid/internal/daily"
	"github.com/robalobadob/wordgrid/internal/db"
	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/grid"
	"github.com/robalobadob/wordgrid/internal/httpserver"
	"github.com/robalobadob/wordgrid/internal/seed"
	"github.com/robalobadob/wordgrid/internal/store"
	"github.com/robalobadob/wordgrid/internal/words"
)

var (
	configPath string
	seedFlag   string
	dailyFlag  bool

	cfg   config.Config
	rules game.Rules

	rootCmd = &cobra.Command{
		Use:           "wordgrid",
		Short:         "A word chaining puzzle on a letter grid",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		RunE:  runPlay,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	playCmd.Flags().StringVar(&seedFlag, "seed", "", `fixed starting seed, e.g. "A5,5"`)
	playCmd.Flags().BoolVar(&dailyFlag, "daily", false, "play today's daily seed")
	playCmd.MarkFlagsMutuallyExclusive("seed", "daily")

	rootCmd.AddCommand(serveCmd, playCmd)
}

// setup loads configuration, configures logging and loads the dictionary.
func setup() error {
	var err error
	if cfg, err = config.Load(configPath); err != nil {
		return err
	}

	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	gc, err := cfg.GridConfig()
	if err != nil {
		return err
	}
	dict, err := words.Load(cfg.WordsFile, gc.MaxWordLength())
	if err != nil {
		return fmt.Errorf("load words: %w", err)
	}
	log.Debug().Int("words", dict.Len()).Str("file", cfg.WordsFile).Msg("dictionary loaded")

	rules = game.Rules{Grid: gc, Dict: dict}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		return err
	}

	srv := httpserver.New(cfg, rules, store.NewMemoryStore(), conn)
	log.Info().Str("port", cfg.Port).Msg("starting wordgrid server")
	return srv.Start(":" + cfg.Port)
}

func runPlay(cmd *cobra.Command, args []string) error {
	var (
		sd   grid.Seed
		mode = game.ModeRandom
		err  error
	)
	letters := rules.Dict.StartLetters()
	switch {
	case seedFlag != "":
		mode = game.ModeFixed
		sd, err = seed.Parse(rules.Grid, seedFlag)
	case dailyFlag:
		mode = game.ModeDaily
		sd = daily.Seed(rules.Grid, cfg.DailySalt, time.Now(), letters)
	default:
		sd, err = seed.Random(rules.Grid, letters)
	}
	if err != nil {
		return err
	}

	g := game.New(rules, sd, mode)
	_, err = cli.Play(g, cli.Options{
		In:    cmd.InOrStdin(),
		Out:   cmd.OutOrStdout(),
		Color: cli.ColorEnabled(os.Stdout),
	})
	return err
}
