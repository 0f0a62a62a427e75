package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/jcorbin/bitstreamop/internal/fileinput"
	"github.com/jcorbin/bitstreamop/internal/logio"
)

type fileList []string

func (fl *fileList) String() string     { return strings.Join(*fl, ",") }
func (fl *fileList) Set(s string) error { *fl = append(*fl, s); return nil }

type argSource struct {
	*strings.Reader
}

func (argSource) Name() string { return "<arg>" }

func main() {
	ctx := context.Background()

	var (
		dump      bool
		lexOnly   bool
		files     fileList
		trace     bool
		timeout   time.Duration
		teeFile   string
		force     bool
		stepLimit uint64
	)
	flag.BoolVar(&dump, "d", false, "dump the parsed program instead of running it")
	flag.BoolVar(&dump, "dump", false, "same as -d")
	flag.BoolVar(&lexOnly, "lex", false, "dump program tokens instead of running it")
	flag.Var(&files, "f", "read program source from `file` (repeatable)")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.StringVar(&teeFile, "tee", "", "also write output to `file`")
	flag.BoolVar(&force, "force", false, "allow writing raw output to a terminal")
	flag.Uint64Var(&stepLimit, "step-limit", 0, "halt after this many evaluation steps")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [options] <code>\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "       %s [options] -f <file> [-f <file> ...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logio.New(os.Stderr)
	log.SetTrace(trace)
	defer func() { os.Exit(log.ExitCode()) }()

	var input fileinput.Input
	switch {
	case len(files) > 0 && flag.NArg() == 0:
		for _, name := range files {
			f, err := os.Open(name)
			if err != nil {
				log.Errorf("cannot read program: %v", err)
				return
			}
			input.Queue = append(input.Queue, f)
		}
	case len(files) == 0 && flag.NArg() == 1:
		input.Queue = []io.Reader{argSource{strings.NewReader(flag.Arg(0))}}
	default:
		flag.Usage()
		os.Exit(2)
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))

	if lexOnly {
		tp := newTextTreePrinter(os.Stdout)
		log.ErrorIf(Tokenize(&input, func(tok Token) { DumpToken(tp, tok, styled) }))
		log.ErrorIf(tp.Err())
		return
	}

	prog, err := ParseInput(&input, log.Named("parse"))
	if err != nil {
		log.ErrorIf(err)
		return
	}

	if dump {
		tp := newTextTreePrinter(os.Stdout)
		DumpNode(tp, prog, styled)
		log.ErrorIf(tp.Err())
		return
	}

	if styled && !force {
		log.Warn("standard output is a terminal; raw bits will be written to it (use -force to silence)")
	}

	var opts = []InterpOption{
		WithInput(os.Stdin),
		WithOutput(os.Stdout),
		WithStepLimit(stepLimit),
	}
	if trace {
		opts = append(opts, WithLogger(log.Named("eval")))
	}
	if teeFile != "" {
		f, err := os.Create(teeFile)
		if err != nil {
			log.ErrorIf(err)
			return
		}
		defer func() { log.ErrorIf(f.Close()) }()
		opts = append(opts, WithTee(f))
	}
	in := New(prog, opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	result, err := in.Run(ctx)
	if err != nil {
		log.ErrorIf(err)
		if trace {
			interpDumper{in, os.Stderr}.dump()
		}
		return
	}
	log.Debug("finished", zap.Stringer("result", result))
}
