package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/Starklosch/Golfscript/config"
	golfscript "github.com/Starklosch/Golfscript/core"
)

func repl(in *golfscript.Interp, cfg *config.Config, resetOpts int) int {
	fmt.Printf("GolfScript v%s. Type quit to exit.\n", VERSION)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.REPL.History
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			} else {
				log.Warningf("cannot write history: %s", err)
			}
		}()
	}

	for {
		code, ok := readCode(ln, in, cfg.REPL.Prompt, cfg.REPL.ContinuationPrompt)
		if !ok {
			fmt.Println()
			break
		}
		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if trimmed == "quit" {
			break
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))

		if err := in.Run(code); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		fmt.Println(dump(in, cfg.Output.Native))
		in.Clear(resetOpts)
	}
	return 0
}

// readCode reads lines until they form a program with no open block or
// string.
func readCode(ln *liner.State, in *golfscript.Interp, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		p := prompt
		if b.Len() > 0 {
			p = cont
		}
		line, err := ln.Prompt(p)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", true
		}
		if err != nil {
			log.Errorf("%s", err)
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !in.Incomplete(b.String()) {
			return b.String(), true
		}
	}
}
