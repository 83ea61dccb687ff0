package main

/*

Tic-tac-toe on N x N boards played by a minimax engine.

	tictactoe [-config path] [-log level] <command> [flags]

commands:
	best     best move for a position
	outcome  outcome and static evaluation of a position
	play     interactive game shell
	bench    computer vs computer games
	config   print (or save) the effective configuration

*/

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/IlikeChooros/go-minimax/pkg/bench"
	"github.com/IlikeChooros/go-minimax/pkg/config"
	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

var (
	configPath = flag.String("config", "", "path to the config file, by default searched in the XDG config dirs")
	logLevel   = flag.String("log", "", "log level (debug, info, warn, error), overrides the config")
)

func mainUsage(w io.Writer) {
	io.WriteString(w, "usage: tictactoe [-config path] [-log level] <command> [flags]\n")
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "  best -board <notation> [-player X|O]  best move for a position\n")
	io.WriteString(w, "  outcome -board <notation>             outcome and evaluation\n")
	io.WriteString(w, "  play [-size n] [-mode hvh|hvc|cvc]    interactive game\n")
	io.WriteString(w, "  bench [-games n] [-p1 v] [-p2 v]      computer vs computer games\n")
	io.WriteString(w, "  config [-save]                        effective configuration\n")
	io.WriteString(w, "board notation: rows separated by '/', cells X, O or '.', e.g. XO./.X./..O\n")
}

func setupLogger(level zerolog.Level) {
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
}

func loadConfig() (*config.Config, error) {
	if *configPath != "" {
		return config.LoadFile(*configPath)
	}
	return config.Load()
}

func main() {
	flag.Usage = func() { mainUsage(flag.CommandLine.Output()) }
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	level := cfg.Level()
	if *logLevel != "" {
		if level, err = zerolog.ParseLevel(*logLevel); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	setupLogger(level)

	if flag.NArg() == 0 {
		mainUsage(os.Stderr)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = run(ctx, cfg, flag.Arg(0), flag.Args()[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Error().Err(err).Str("command", flag.Arg(0)).Msg("")
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, cmd string, args []string, out io.Writer) error {
	switch cmd {
	case "best":
		return runBest(ctx, cfg, args, out)
	case "outcome":
		return runOutcome(args, out)
	case "play":
		return runPlay(ctx, cfg, args, out)
	case "bench":
		return runBench(ctx, cfg, args, out)
	case "config":
		return runConfig(cfg, args, out)
	case "help":
		mainUsage(out)
		return nil
	}
	return fmt.Errorf("%w: %q", ErrBadCommand, cmd)
}

// engineFlags registers the engine related flags, defaulting to the config values
type engineFlags struct {
	variant *string
	depth   *int
	workers *int
	scoring *string
}

func addEngineFlags(fs *flag.FlagSet, cfg *config.Config) *engineFlags {
	return &engineFlags{
		variant: fs.String("variant", cfg.Engine.Variant, "plain, depth-limit, alpha-beta or parallel"),
		depth:   fs.Int("depth", cfg.Engine.Depth, "depth limit of the depth limited variants"),
		workers: fs.Int("workers", cfg.Engine.Workers, "parallel workers, 0 means one per CPU"),
		scoring: fs.String("scoring", cfg.Engine.Scoring, "terminal scoring: fixed or depth-weighted"),
	}
}

// apply returns a validated copy of the config with the flag values
func (ef *engineFlags) apply(cfg *config.Config) (*config.Config, error) {
	c := *cfg
	c.Engine = config.EngineConfig{
		Variant: *ef.variant,
		Depth:   *ef.depth,
		Workers: *ef.workers,
		Scoring: *ef.scoring,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// newEngine builds the engine described by the config
func newEngine(cfg *config.Config) (*minimax.Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return minimax.New(cfg.EngineOptions()...), nil
}

func parseBoardFlag(notation string) (*ttt.Board, error) {
	if notation == "" {
		return nil, fmt.Errorf("%w: -board is required", ErrBadCommand)
	}
	board, err := ttt.ParseBoard(notation)
	if err != nil {
		return nil, err
	}
	if err := ttt.ValidateSize(board.Size()); err != nil {
		return nil, err
	}
	return board, nil
}

func runBest(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("best", flag.ContinueOnError)
	notation := fs.String("board", "", "position, e.g. XO./.X./..O")
	player := fs.String("player", "", "side to move, inferred from the marks by default")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	ef := addEngineFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	board, err := parseBoardFlag(*notation)
	if err != nil {
		return err
	}
	mover := board.Turn()
	if *player != "" {
		if mover, err = ttt.ParsePlayer(*player); err != nil {
			return err
		}
	}
	c, err := ef.apply(cfg)
	if err != nil {
		return err
	}
	engine, err := newEngine(c)
	if err != nil {
		return err
	}

	result, err := engine.BestMove(ctx, board, mover)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	render := newBoardRenderer(out)
	io.WriteString(out, render.Render(board, minimax.NoMove))
	fmt.Fprintf(out, "%s, %s to move\n", engine, render.mark(mover))
	if result.Move == minimax.NoMove {
		fmt.Fprintln(out, "no move, the board is full")
		return nil
	}
	fmt.Fprintf(out, "best move: %d (row %d, col %d), score %.2f\n",
		result.Move, result.Move/board.Size(), result.Move%board.Size(), result.Score)
	for _, c := range result.Candidates {
		fmt.Fprintf(out, "  %3d: %.2f\n", c.Move, c.Score)
	}
	fmt.Fprintln(out, result.Stats)
	return nil
}

func runOutcome(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("outcome", flag.ContinueOnError)
	notation := fs.String("board", "", "position, e.g. XO./.X./..O")
	if err := fs.Parse(args); err != nil {
		return err
	}
	board, err := parseBoardFlag(*notation)
	if err != nil {
		return err
	}

	eval := ttt.Evaluate(board)
	render := newBoardRenderer(out)
	io.WriteString(out, render.Render(board, minimax.NoMove))
	fmt.Fprintf(out, "outcome: %s\n", render.Outcome(eval.Outcome))
	fmt.Fprintf(out, "score: X %.2f, O %.2f\n", eval.Score.Cross, eval.Score.Circle)
	return nil
}

func runPlay(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	size := fs.Int("size", cfg.Size, "board size, 3 to 10")
	modeStr := fs.String("mode", ModeHumanVsComputer.String(), "hvh, hvc or cvc")
	humanStr := fs.String("human", "X", "your side in hvc mode")
	ef := addEngineFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	mode, err := ParseMode(*modeStr)
	if err != nil {
		return err
	}
	human, err := ttt.ParsePlayer(*humanStr)
	if err != nil {
		return err
	}
	c, err := ef.apply(cfg)
	if err != nil {
		return err
	}
	engine, err := newEngine(c)
	if err != nil {
		return err
	}

	session := NewSession(*size, mode, engine)
	session.SetMode(mode, human)
	return NewShellController(out, session, *c).Loop(ctx)
}

func runBench(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("bench", flag.ContinueOnError)
	size := fs.Int("size", cfg.Size, "board size, 3 to 10")
	games := fs.Uint("games", cfg.Bench.Games, "number of games")
	threads := fs.Uint("threads", cfg.Bench.Threads, "games played concurrently")
	first := fs.String("first", cfg.Bench.FirstMove, "who plays X: random, alternate or player1")
	p1 := fs.String("p1", cfg.Engine.Variant, "variant of player 1")
	p2 := fs.String("p2", cfg.Engine.Variant, "variant of player 2")
	report := fs.String("report", "", "write the summary to this file, .json or .yaml")
	ef := addEngineFlags(fs, cfg)
	if err := fs.Parse(args); err != nil {
		return err
	}

	c, err := ef.apply(cfg)
	if err != nil {
		return err
	}
	c.Size = *size
	c.Bench = config.BenchConfig{Games: *games, Threads: *threads, FirstMove: *first}
	if err := c.Validate(); err != nil {
		return err
	}
	contestant := func(variant string) (bench.Contestant, error) {
		player := *c
		player.Engine.Variant = variant
		engine, err := newEngine(&player)
		if err != nil {
			return bench.Contestant{}, err
		}
		return bench.Contestant{Name: variant, Agent: engine}, nil
	}
	player1, err := contestant(*p1)
	if err != nil {
		return err
	}
	player2, err := contestant(*p2)
	if err != nil {
		return err
	}
	if player1.Name == player2.Name {
		player1.Name += "#1"
		player2.Name += "#2"
	}

	arena := bench.NewVersusArena(c.Size, player1, player2).WithContext(ctx)
	arena.Setup(c.Bench.Games, c.Bench.Threads, c.FirstMovePolicy())
	summary, err := arena.Run(bench.NewTerminalListener(out))
	if err != nil {
		return err
	}
	if *report != "" {
		return writeReport(*report, summary)
	}
	return nil
}

func writeReport(path string, summary bench.VersusSummaryInfo) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(summary, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(summary)
	default:
		return fmt.Errorf("%w: report must be .json or .yaml, got %q", ErrBadCommand, path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func runConfig(cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	save := fs.Bool("save", false, "save the effective configuration to the user config dir")
	if err := fs.Parse(args); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	out.Write(data)
	if !*save {
		return nil
	}
	path, err := cfg.Save()
	if err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintln(out, "saved to", path)
	return nil
}
