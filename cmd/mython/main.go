// Command mython runs the interpreter either against a source file or as
// an interactive REPL.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/spf13/pflag"

	"mython/config"
	"mython/lexer"
	"mython/parser"
	"mython/runtime"
	"mython/token"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "", "path to a REPL config file (YAML)")
		plain      = pflag.BoolP("plain", "p", false, "use a plain line-oriented REPL instead of the styled TUI")
		help       = pflag.BoolP("help", "h", false, "show usage")
	)
	pflag.Parse()

	if *help {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [script]\n\n", os.Args[0])
		pflag.PrintDefaults()
		return
	}

	if profOut, has := os.LookupEnv("CPUPROFILE"); has && profOut != "" {
		f, err := os.Create(profOut)
		if err != nil {
			log.Fatalf("cannot create profile output file %q: %v", profOut, err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	}

	switch pflag.NArg() {
	case 0:
		runREPLMode(cfg, *plain)
	case 1:
		execFile(pflag.Arg(0))
	default:
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [script]\n", os.Args[0])
		os.Exit(1)
	}
}

func execFile(path string) {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open file %q: %v\n", path, err)
		os.Exit(1)
	}

	sess := newSession()
	if _, err := sess.run(string(source), runtime.NewSimpleContext(os.Stdout)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runREPLMode(cfg config.Config, plain bool) {
	if plain {
		runPlainREPL(cfg)
		return
	}
	if err := runREPL(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session holds the persistent root scope a REPL evaluates successive
// inputs against; file execution uses a throwaway one-shot session.
type session struct {
	root *runtime.Closure
}

func newSession() *session {
	return &session{root: runtime.NewClosure()}
}

// run lexes, parses and executes source against the session's root
// scope, reporting the first lexer, parse or runtime error it hits. It
// returns the value of the last statement executed, for callers (the
// REPL front ends) that want to echo it back.
func (s *session) run(source string, ctx runtime.Context) (result runtime.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case *runtime.RuntimeError:
				err = e
			case *lexer.LexerError:
				err = e
			default:
				panic(r)
			}
		}
	}()

	l := lexer.New(strings.NewReader(source))
	p := parser.New(l)
	prog, perr := p.ParseProgram()
	if perr != nil {
		return nil, perr
	}

	return prog.Execute(s.root, ctx), nil
}

// echoTokens lexes source on its own throwaway Lexer and writes one line
// per token to w, for the "echo_tokens" config diagnostic. It stops at
// the first Eof rather than looping, since the lexer produces Eof
// forever after.
func echoTokens(w io.Writer, source string) {
	l := lexer.New(strings.NewReader(source))
	for {
		t := l.CurrentToken()
		fmt.Fprintln(w, t)
		if t.Kind == token.EOF {
			return
		}
		l.NextToken()
	}
}
