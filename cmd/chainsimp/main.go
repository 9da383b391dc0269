package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/razeghi71/chainsimp/ast"
	"github.com/razeghi71/chainsimp/canon"
	"github.com/razeghi71/chainsimp/config"
	"github.com/razeghi71/chainsimp/engine"
	"github.com/razeghi71/chainsimp/loader"
	"github.com/razeghi71/chainsimp/logger"
	"github.com/razeghi71/chainsimp/optimizer"
	"github.com/razeghi71/chainsimp/parser"
	"github.com/razeghi71/chainsimp/printer"
	"github.com/razeghi71/chainsimp/stream"
)

// Exit codes.
const (
	exitOK       = 0
	exitUsage    = 1
	exitParse    = 2
	exitMismatch = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg := config.FromEnv()

	fs := flag.NewFlagSet("chainsimp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	optimize := fs.Bool("O", cfg.Optimize, "optimize the canonical chain")
	input := fs.String("input", "", "run the result over the integers in `file`")
	column := fs.String("column", cfg.Column, "column or field to read from the input file")
	check := fs.Bool("check", false, "compare the result with the source chain over -range")
	bounds := fs.String("range", "-100..100", "inclusive input range for -check, as `from..to`")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: chainsimp [flags] '<chain>'")
		fmt.Fprint(stderr, "example: chainsimp -O 'map{(element+10)}%>%filter{(element>10)}'\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	cfg.LogLevel = *logLevel
	lc, err := cfg.Logger()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	lc.Output = stderr
	if err := logger.Init(lc); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	defer logger.Close()

	if fs.NArg() < 1 {
		fmt.Fprintln(stdout, "NO SOURCE")
		return exitUsage
	}
	src := fs.Arg(0)

	chain, err := parser.Parse(src)
	if err != nil {
		var perr *parser.Error
		if errors.As(err, &perr) {
			logger.Debug("parse failed", "pos", perr.Pos, "error", perr.Msg)
			fmt.Fprintln(stdout, perr.Kind)
		} else {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
		return exitParse
	}
	logger.LogStage("parsed", printer.Format(chain))

	result := canon.Canonicalize(chain)
	logger.LogStage("canonical", printer.Format(result))
	if *optimize {
		result = optimizer.Optimize(result)
		logger.LogStage("optimized", printer.Format(result))
	}
	fmt.Fprintln(stdout, printer.Format(result))

	if *check {
		from, to, err := parseRange(*bounds)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
		if m := engine.Compare(chain, result, stream.Range(from, to)); m != nil {
			logger.Warn("chains disagree", "input", m.Input)
			fmt.Fprintf(stderr, "MISMATCH at %d: source %s, result %s\n", m.Input, describe(m.Left), describe(m.Right))
			return exitMismatch
		}
	}

	if *input != "" {
		if err := execute(result, *input, *column, stdout); err != nil {
			logger.Error("execution failed", "input", *input, "error", err)
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
	}
	return exitOK
}

func execute(chain *ast.Chain, filename, column string, stdout io.Writer) error {
	s, err := loader.Load(filename, column)
	if err != nil {
		return errors.Wrap(err, "load error")
	}
	out := engine.Execute(chain, s)
	for _, v := range out.Values {
		fmt.Fprintln(stdout, v)
	}
	return nil
}

// parseRange parses "from..to".
func parseRange(s string) (int64, int64, error) {
	lo, hi, ok := strings.Cut(s, "..")
	if !ok {
		return 0, 0, errors.Errorf("invalid range %q (expected from..to)", s)
	}
	from, err := strconv.ParseInt(lo, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid range start %q", lo)
	}
	to, err := strconv.ParseInt(hi, 10, 64)
	if err != nil {
		return 0, 0, errors.Wrapf(err, "invalid range end %q", hi)
	}
	if from > to {
		return 0, 0, errors.Errorf("empty range %q", s)
	}
	return from, to, nil
}

func describe(r engine.Result) string {
	if !r.OK {
		return "no output"
	}
	return strconv.FormatInt(r.Value, 10)
}
