package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/IlikeChooros/go-minimax/pkg/config"
	"github.com/IlikeChooros/go-minimax/pkg/minimax"
	"github.com/IlikeChooros/go-minimax/pkg/ttt"
)

var (
	errQuit       = errors.New("quit")
	ErrBadCommand = errors.New("bad command")
)

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new [size] - start a new game, size in [3, 10]\n")
	io.WriteString(w, "move <i> | move <row> <col> - place your mark\n")
	io.WriteString(w, "ai - let the computer play the side to move\n")
	io.WriteString(w, "mode <hvh|hvc|cvc> [x|o] - who plays, in hvc mode optionally your side\n")
	io.WriteString(w, "variant <plain|depth-limit|alpha-beta|parallel> [depth] - computer player\n")
	io.WriteString(w, "depth <n> - depth limit of the computer player\n")
	io.WriteString(w, "scoring <fixed|depth-weighted> - terminal scoring\n")
	io.WriteString(w, "show - print the board\n")
	io.WriteString(w, "stats - statistics of the last computer move\n")
	io.WriteString(w, "exit - leave\n")
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

type ShellController struct {
	l        *readline.Instance
	out      io.Writer
	session  *Session
	render   *boardRenderer
	// Engine settings of the computer player
	cfg config.Config
}

func NewShellController(out io.Writer, session *Session, cfg config.Config) *ShellController {
	return &ShellController{
		out:      out,
		session:  session,
		render:   newBoardRenderer(out),
		cfg:      cfg,
	}
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.out, msg)
	io.WriteString(sc.out, "\n")
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func (sc *ShellController) showBoard() {
	s := sc.session
	io.WriteString(sc.out, sc.render.Render(s.Board(), s.LastMove()))
	if o := s.Outcome(); o.Terminal() {
		sc.showMessage("game over: " + sc.render.Outcome(o))
	} else {
		sc.showMessage(fmt.Sprintf("%s to move (%s)", sc.render.mark(s.Turn()), s.Mode()))
	}
}

func (sc *ShellController) showComputerMove(result minimax.Result) {
	sc.showMessage(fmt.Sprintf("computer played %d, iterations: %d", result.Move, result.Iterations()))
	sc.showBoard()
}

// respond lets the computer move if it's its turn
func (sc *ShellController) respond(ctx context.Context) error {
	return sc.session.Respond(ctx, sc.showComputerMove)
}

func (sc *ShellController) parseMove(args []string) (int, error) {
	size := sc.session.Board().Size()
	switch len(args) {
	case 1:
		return strconv.Atoi(args[0])
	case 2:
		row, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, err
		}
		col, err := strconv.Atoi(args[1])
		if err != nil {
			return 0, err
		}
		if row < 0 || row >= size || col < 0 || col >= size {
			return 0, fmt.Errorf("%w: row %d, col %d", ttt.ErrOutOfBounds, row, col)
		}
		return sc.session.Board().Index(row, col), nil
	}
	return 0, fmt.Errorf("%w: move <i> | move <row> <col>", ErrBadCommand)
}

func (sc *ShellController) setEngine(cfg config.Config) error {
	engine, err := newEngine(&cfg)
	if err != nil {
		return err
	}
	sc.cfg = cfg
	sc.session.SetEngine(engine)
	sc.showMessage(engine.String())
	return nil
}

// Execute runs a single shell command
func (sc *ShellController) Execute(ctx context.Context, line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadCommand, err)
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "exit", "quit", "bye":
		return errQuit

	case "help":
		usage(sc.out)

	case "new":
		size := sc.session.Board().Size()
		if len(args) > 0 {
			if size, err = strconv.Atoi(args[0]); err != nil {
				return fmt.Errorf("%w: size %q", ErrBadCommand, args[0])
			}
		}
		sc.session.Reset(size)
		sc.showBoard()
		return sc.respond(ctx)

	case "move":
		i, err := sc.parseMove(args)
		if err != nil {
			return err
		}
		if err := sc.session.Play(i); err != nil {
			return err
		}
		sc.showBoard()
		return sc.respond(ctx)

	case "ai":
		result, err := sc.session.ComputerMove(ctx)
		if err != nil {
			return err
		}
		sc.showComputerMove(result)
		return sc.respond(ctx)

	case "mode":
		if len(args) == 0 {
			return fmt.Errorf("%w: mode <hvh|hvc|cvc> [x|o]", ErrBadCommand)
		}
		mode, err := ParseMode(args[0])
		if err != nil {
			return err
		}
		human := ttt.Empty
		if len(args) > 1 {
			if human, err = ttt.ParsePlayer(args[1]); err != nil {
				return err
			}
		}
		sc.session.SetMode(mode, human)
		sc.showMessage("mode: " + mode.String())
		if mode == ModeHumanVsComputer {
			return sc.respond(ctx)
		}

	case "variant":
		if len(args) == 0 {
			return fmt.Errorf("%w: variant <name> [depth]", ErrBadCommand)
		}
		cfg := sc.cfg
		cfg.Engine.Variant = args[0]
		if len(args) > 1 {
			if cfg.Engine.Depth, err = strconv.Atoi(args[1]); err != nil || cfg.Engine.Depth < 0 {
				return fmt.Errorf("%w: depth %q", ErrBadCommand, args[1])
			}
		}
		return sc.setEngine(cfg)

	case "depth":
		if len(args) == 0 {
			return fmt.Errorf("%w: depth <n>", ErrBadCommand)
		}
		cfg := sc.cfg
		if cfg.Engine.Depth, err = strconv.Atoi(args[0]); err != nil || cfg.Engine.Depth < 0 {
			return fmt.Errorf("%w: depth %q", ErrBadCommand, args[0])
		}
		return sc.setEngine(cfg)

	case "scoring":
		if len(args) == 0 {
			return fmt.Errorf("%w: scoring <fixed|depth-weighted>", ErrBadCommand)
		}
		cfg := sc.cfg
		cfg.Engine.Scoring = args[0]
		return sc.setEngine(cfg)

	case "show":
		sc.showBoard()

	case "stats":
		result := sc.session.LastResult()
		if result == nil {
			sc.showMessage("no computer move yet")
			return nil
		}
		sc.showMessage(result.String())
		for _, c := range result.Candidates {
			sc.showMessage(fmt.Sprintf("  %3d: %.2f", c.Move, c.Score))
		}

	default:
		return fmt.Errorf("%w: %q, type 'help'", ErrBadCommand, cmd)
	}
	return nil
}

func (sc *ShellController) Loop(ctx context.Context) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[34mtictactoe>\033[0m ",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		return err
	}
	defer l.Close()
	sc.l = l
	sc.out = l.Stdout()
	sc.render = newBoardRenderer(sc.out)

	sc.showBoard()
	if err := sc.respond(ctx); err != nil {
		sc.showError(err)
	}

	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		err = sc.Execute(ctx, strings.TrimSpace(line))
		if errors.Is(err, errQuit) {
			break
		}
		if err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msg("exiting readline loop")
	return nil
}
