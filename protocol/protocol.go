// Package protocol implements the line-oriented external dispatcher the
// engine core is driven through: a small, GTP-flavoured command set read
// from an io.Reader and answered on an io.Writer. It is deliberately thin
// glue over game.Game and mcts.Engine — parsing and formatting only.
package protocol

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/vpgo/engine/colour"
	"github.com/vpgo/engine/config"
	"github.com/vpgo/engine/game"
	"github.com/vpgo/engine/mcts"
	"github.com/vpgo/engine/zobrist"
)

// pass and resign are the textual tokens for the two move sentinels.
const (
	tokenPass   = "pass"
	tokenResign = "resign"
)

// command is one parsed input line: an optional leading command id
// (mirroring GTP's numbered-command convention), a command name, and its
// space-separated arguments.
type command struct {
	hasID bool
	id    int
	name  string
	args  []string
}

func parseCommand(line string) command {
	line = stripComment(line)
	fields := strings.Fields(line)
	var cmd command
	if len(fields) == 0 {
		return cmd
	}
	if id, err := strconv.Atoi(fields[0]); err == nil {
		cmd.hasID = true
		cmd.id = id
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return cmd
	}
	cmd.name = fields[0]
	cmd.args = fields[1:]
	return cmd
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return line
}

func (c command) empty() bool { return c.name == "" }

// commandSpec documents one entry of the command table, for list_commands'
// human-readable listing.
type commandSpec struct {
	name string
	help string
}

var commandTable = []commandSpec{
	{"protocol_version", "report the dispatcher's protocol version"},
	{"name", "report the engine's name"},
	{"version", "report the engine's version string"},
	{"known_command", "report whether an argument names a known command"},
	{"list_commands", "list every known command"},
	{"quit", "end the session"},
	{"boardsize", "confirm the (fixed) board size"},
	{"clear_board", "start a fresh game at the current size/komi"},
	{"komi", "set the komi to apply from the next clear_board"},
	{"play", "play a move for a colour"},
	{"genmove", "search and play the engine's move for a colour"},
	{"showboard", "render the current position"},
	{"showstats", "render the previous genmove's search statistics"},
}

// knownCommands lists every command this dispatcher answers, for
// known_command's membership check.
var knownCommands = lo.Map(commandTable, func(c commandSpec, _ int) string { return c.name })

// Dispatcher drives a Game/Engine pair from line-oriented commands. It
// owns no goroutines of its own: Run blocks the calling goroutine for the
// lifetime of the session.
type Dispatcher struct {
	cfg    *config.Config
	zt     *zobrist.Table
	g      *game.Game
	engine *mcts.Engine
	logger zerolog.Logger

	size int
	komi int

	lastStats mcts.Stats
}

// New builds a Dispatcher from cfg, constructing the initial Game and
// Engine.
func New(cfg *config.Config, logger zerolog.Logger) *Dispatcher {
	zt := zobrist.NewSeeded(cfg.BoardSize, cfg.Seed)
	engineCfg := mcts.Config{
		Simulations:     cfg.Simulations,
		Workers:         cfg.Workers,
		ResignThreshold: cfg.ResignThreshold,
		UCTConstant:     cfg.UCTConstant,
		Policy:          mcts.Policy{PatternProbability: cfg.PatternProbability},
	}
	return &Dispatcher{
		cfg:    cfg,
		zt:     zt,
		g:      game.New(cfg.BoardSize, cfg.Komi, zt),
		engine: mcts.New(engineCfg),
		logger: logger,
		size:   cfg.BoardSize,
		komi:   cfg.Komi,
	}
}

// Run reads commands from r until EOF or "quit", writing every response to
// w. It never panics on malformed input: parse and boundary errors are
// reported back over w and never touch engine state.
func (d *Dispatcher) Run(r io.Reader, w io.Writer) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd := parseCommand(scanner.Text())
		if cmd.empty() {
			continue
		}
		if d.dispatch(cmd, w) {
			return
		}
	}
}

// dispatch executes one command and reports true if the session should
// stop reading further input.
func (d *Dispatcher) dispatch(cmd command, w io.Writer) bool {
	switch cmd.name {
	case "quit":
		d.ok(cmd, w, "")
		return true
	case "protocol_version":
		d.ok(cmd, w, "2")
	case "name":
		d.ok(cmd, w, "vpgo")
	case "version":
		d.ok(cmd, w, "poc")
	case "list_commands":
		lines := lo.Map(commandTable, func(c commandSpec, _ int) string {
			return fmt.Sprintf("%s - %s", c.name, c.help)
		})
		d.ok(cmd, w, strings.Join(lines, "\n"))
	case "known_command":
		known := len(cmd.args) == 1 && lo.Contains(knownCommands, cmd.args[0])
		d.ok(cmd, w, strconv.FormatBool(known))
	case "boardsize":
		d.boardsize(cmd, w)
	case "clear_board":
		d.clearBoard(cmd, w)
	case "komi":
		d.setKomi(cmd, w)
	case "play":
		d.play(cmd, w)
	case "genmove":
		d.genmove(cmd, w)
	case "showboard":
		d.ok(cmd, w, renderBoard(d.g))
	case "showstats":
		d.showstats(cmd, w)
	default:
		d.fail(cmd, w, "unknown command")
	}
	return false
}

func (d *Dispatcher) ok(cmd command, w io.Writer, body string) {
	fmt.Fprint(w, "=")
	if cmd.hasID {
		fmt.Fprintf(w, "%d", cmd.id)
	}
	if body != "" {
		fmt.Fprintf(w, " %s", body)
	}
	fmt.Fprint(w, "\n\n")
}

func (d *Dispatcher) fail(cmd command, w io.Writer, reason string) {
	fmt.Fprint(w, "?")
	if cmd.hasID {
		fmt.Fprintf(w, "%d", cmd.id)
	}
	fmt.Fprintf(w, " %s\n\n", reason)
}

func (d *Dispatcher) boardsize(cmd command, w io.Writer) {
	if len(cmd.args) != 1 {
		d.fail(cmd, w, "syntax error")
		return
	}
	n, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		d.fail(cmd, w, "syntax error")
		return
	}
	if n != d.size {
		// Board size is fixed at engine start (no variable size inside
		// a single match); reconstructing the Zobrist table mid-match
		// would invalidate the superko history.
		d.fail(cmd, w, "unacceptable size")
		return
	}
	d.ok(cmd, w, "")
}

func (d *Dispatcher) clearBoard(cmd command, w io.Writer) {
	d.g = game.New(d.size, d.komi, d.zt)
	d.ok(cmd, w, "")
}

func (d *Dispatcher) setKomi(cmd command, w io.Writer) {
	if len(cmd.args) != 1 {
		d.fail(cmd, w, "syntax error")
		return
	}
	k, err := strconv.Atoi(cmd.args[0])
	if err != nil {
		d.fail(cmd, w, "syntax error")
		return
	}
	// Komi applies starting with the next clear_board, consistent with
	// reset_game's "no search in flight" precondition.
	d.komi = k
	d.ok(cmd, w, "")
}

func (d *Dispatcher) play(cmd command, w io.Writer) {
	if len(cmd.args) != 2 {
		d.fail(cmd, w, "syntax error")
		return
	}
	col, ok := colour.Parse(strings.ToLower(cmd.args[0]))
	if !ok {
		d.fail(cmd, w, "syntax error")
		return
	}
	m, err := decodeMove(cmd.args[1], d.g)
	if err != nil {
		d.fail(cmd, w, "syntax error")
		return
	}
	if d.g.IsIllegal(m, col) {
		d.fail(cmd, w, "illegal move")
		return
	}
	d.g.Play(m, col)
	d.ok(cmd, w, "")
}

func (d *Dispatcher) genmove(cmd command, w io.Writer) {
	if len(cmd.args) < 1 || len(cmd.args) > 2 {
		d.fail(cmd, w, "syntax error")
		return
	}
	col, ok := colour.Parse(strings.ToLower(cmd.args[0]))
	if !ok {
		d.fail(cmd, w, "syntax error")
		return
	}
	if d.g.Winner() != colour.None {
		d.fail(cmd, w, "game is already decided")
		return
	}
	seed := d.cfg.Seed
	if seed == 0 {
		seed = frand.Uint64n(1<<63) + 1
	}
	if len(cmd.args) == 2 {
		s, err := strconv.ParseUint(cmd.args[1], 10, 64)
		if err != nil {
			d.fail(cmd, w, "syntax error")
			return
		}
		seed = s
	}

	ctx := d.logger.WithContext(context.Background())
	move, result := d.engine.FindMove(ctx, d.g, col, seed)
	d.lastStats = result
	d.g.Play(move, col)
	d.ok(cmd, w, encodeMove(move, d.g))
}

func (d *Dispatcher) showstats(cmd command, w io.Writer) {
	if d.lastStats.Root == nil {
		d.fail(cmd, w, "no search has run yet")
		return
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "simulations: %d  burned: %d  elapsed: %s  root win%%: %.1f\n",
		d.lastStats.Simulations, d.lastStats.Burned, d.lastStats.Elapsed, d.lastStats.WinRate()*100)
	fmt.Fprintf(&sb, "mean simulations/sec: %.0f\n", d.engine.Throughput().Mean())

	visits := make([]float64, 0, len(d.lastStats.Root.Children()))
	for _, c := range d.lastStats.Root.Children() {
		visits = append(visits, float64(c.Visits()))
	}
	if len(visits) > 0 {
		hist := histogram.Hist(10, visits)
		histogram.Fprint(&sb, hist, histogram.Linear(40))
	}
	d.ok(cmd, w, sb.String())
}

func renderBoard(g *game.Game) string {
	b := g.Board()
	size := b.Size()
	var sb strings.Builder
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch b.Value(y*size + x) {
			case colour.Black:
				sb.WriteString(" B")
			case colour.White:
				sb.WriteString(" W")
			default:
				sb.WriteString(" .")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
