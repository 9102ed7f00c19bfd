package main

import (
	"fmt"
	"io"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/vpgo/engine/config"
	"github.com/vpgo/engine/protocol"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "vpgo:", err)
		os.Exit(1)
	}

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger

	if cfg.CPUProfile != "" {
		f, err := os.Create(cfg.CPUProfile)
		if err != nil {
			log.Fatal().Err(err).Msg("could not create CPU profile")
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal().Err(err).Msg("could not start CPU profile")
		}
		defer pprof.StopCPUProfile()
	}

	d := protocol.New(cfg, logger)

	if cfg.Batch {
		d.Run(os.Stdin, os.Stdout)
		return
	}
	runInteractive(d)
}

// runInteractive wraps the dispatcher in a readline session for a human
// driving the engine from a terminal, rather than a GTP-speaking
// controller piping stdin/stdout directly.
func runInteractive(d *protocol.Dispatcher) {
	l, err := readline.NewEx(&readline.Config{
		Prompt:              "vpgo> ",
		HistoryFile:         "/tmp/vpgo_history.tmp",
		EOFPrompt:           "quit",
		InterruptPrompt:     "^C",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not start readline")
	}
	defer l.Close()

	pr, pw := io.Pipe()
	done := make(chan struct{})
	go func() {
		d.Run(pr, l.Stdout())
		close(done)
	}()

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
		io.WriteString(pw, line+"\n")
	}
	pw.Close()
	<-done
}
