package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"mython/config"
	"mython/runtime"
	"mython/util"
)

// runPlainREPL is a bufio.Scanner line reader, grounded directly in the
// teacher's own prompt loop: it accumulates lines into a block and
// evaluates the block once a blank line closes it, since a Mython
// statement can span several physical lines of indentation. Two REPL
// commands work on the history of successfully run blocks: ":last"
// prints the most recent block's source to stderr without running it
// again, and ":undo" drops it from that history.
func runPlainREPL(cfg config.Config) {
	sess := newSession()
	ctx := runtime.NewSimpleContext(os.Stdout)
	scanner := bufio.NewScanner(os.Stdin)

	var block strings.Builder
	var history []string

	runBlock := func(src string) {
		if cfg.EchoTokens {
			echoTokens(os.Stderr, src)
		}
		result, err := sess.run(src, ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		if cfg.ShowResult && result != nil {
			fmt.Fprintln(os.Stderr, result.String())
		}
		history = append(history, src)
	}

	for {
		fmt.Fprint(os.Stderr, cfg.Prompt)
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()

		switch strings.TrimSpace(line) {
		case ":last":
			if len(history) > 0 {
				fmt.Fprint(os.Stderr, *util.Last(history))
			}
			continue
		case ":undo":
			if len(history) > 0 {
				util.Pop(&history)
			}
			continue
		}

		if strings.TrimSpace(line) == "" && block.Len() > 0 {
			runBlock(block.String())
			block.Reset()
			continue
		}

		block.WriteString(line)
		block.WriteString("\n")
	}

	if block.Len() > 0 {
		runBlock(block.String())
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintln(os.Stderr, "[EXIT]")
}
