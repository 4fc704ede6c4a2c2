// mdlex dumps the token stream of markdown code blocks.
//
// Reads files (or stdin) and prints one token per line, or a structured
// NDJSON/YAML dump. With -i it becomes an interactive prompt: paste a block,
// finish with a blank line, and the tokens come back colorized.
package main

import (
	"bufio"
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

	"github.com/peterh/liner"
	"gopkg.in/yaml.v3"

	markdown "github.com/evannagle/markdown-parser"
)

const (
	appName     = "mdlex"
	historyFile = ".mdlex_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var (
	flagFormat    = flag.String("format", "text", "output format: text, json (NDJSON), or yaml")
	flagNoLexeme  = flag.Bool("no-lexeme", false, "hide raw lexeme in output")
	flagNoLiteral = flag.Bool("no-literal", false, "hide interpreted literal in output")
	flagRepl      = flag.Bool("i", false, "interactive mode: tokenize blocks from a prompt")
	flagVersion   = flag.Bool("version", false, "print the version and exit")
)

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("%s %s (built %s)\n", appName, markdown.Version, markdown.BuildDate)
		return
	}

	if *flagRepl {
		os.Exit(repl())
	}

	args := flag.Args()

	// When no files are given, read stdin.
	if len(args) == 0 {
		if err := process(os.Stdin, ""); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	exit := 0
	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open %s: %v\n", path, err)
			exit = 1
			continue
		}
		if err := process(f, path); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exit = 1
		}
		f.Close()
	}
	os.Exit(exit)
}

func process(r io.Reader, filename string) error {
	src, err := slurp(r)
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	toks, err := markdown.NewCodeBlockScanner(src).Tokenize()
	if err != nil {
		return markdown.WrapErrorWithSource(err, src)
	}

	switch *flagFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		for _, t := range toks {
			if err := enc.Encode(toDumpToken(filename, t)); err != nil {
				return fmt.Errorf("encode json: %w", err)
			}
		}
		return nil
	case "yaml":
		out := make([]dumpToken, 0, len(toks))
		for _, t := range toks {
			out = append(out, toDumpToken(filename, t))
		}
		b, err := yaml.Marshal(out)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		os.Stdout.Write(b)
		return nil
	case "text":
		if filename != "" {
			fmt.Printf("== %s ==\n", filename)
		}
		for _, t := range toks {
			fmt.Println(textLine(t, false))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json, or yaml)", *flagFormat)
	}
}

func textLine(t markdown.Token, color bool) string {
	typeName := t.Type.String()
	if color {
		typeName = blue(typeName)
	}
	parts := []string{
		fmt.Sprintf("%4d:%-3d", t.Line, t.Col),
		fmt.Sprintf("%-12s", typeName),
	}
	if !*flagNoLexeme {
		lex := fmt.Sprintf("lexeme=%q", t.Lexeme)
		if color {
			lex = green(lex)
		}
		parts = append(parts, lex)
	}
	if !*flagNoLiteral && t.Literal != nil {
		parts = append(parts, fmt.Sprintf("literal=%#v", t.Literal))
	}
	return strings.Join(parts, "  ")
}

func slurp(r io.Reader) (string, error) {
	var b strings.Builder
	br := bufio.NewReader(r)
	for {
		chunk, err := br.ReadString(0)
		b.WriteString(chunk)
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			if err == bufio.ErrBufferFull {
				continue
			}
			return "", err
		}
	}
}

type dumpToken struct {
	File    string      `json:"file,omitempty" yaml:"file,omitempty"`
	Type    string      `json:"type" yaml:"type"`
	Lexeme  string      `json:"lexeme,omitempty" yaml:"lexeme,omitempty"`
	Literal interface{} `json:"literal,omitempty" yaml:"literal,omitempty"`
	Line    int         `json:"line" yaml:"line"`
	Col     int         `json:"col" yaml:"col"`
}

func toDumpToken(file string, t markdown.Token) dumpToken {
	out := dumpToken{
		File:    file,
		Type:    t.Type.String(),
		Lexeme:  t.Lexeme,
		Literal: t.Literal,
		Line:    t.Line,
		Col:     t.Col,
	}
	if *flagNoLexeme {
		out.Lexeme = ""
	}
	if *flagNoLiteral {
		out.Literal = nil
	}
	return out
}

// -----------------------------------------------------------------------------
// interactive mode
// -----------------------------------------------------------------------------

func repl() int {
	fmt.Printf("%s %s\nPaste a code block, end it with a blank line. Ctrl+D or :quit exits.\n", appName, markdown.Version)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		block, ok := readBlock(ln)
		if !ok {
			fmt.Println()
			return 0
		}

		if strings.HasPrefix(strings.TrimSpace(block), ":") {
			switch strings.TrimSpace(strings.ToLower(block)) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(block) == "" {
			continue
		}

		toks, err := markdown.NewCodeBlockScanner(block).Tokenize()
		if err != nil {
			fmt.Fprintln(os.Stderr, red(markdown.WrapErrorWithSource(err, block).Error()))
			continue
		}
		for _, t := range toks {
			fmt.Println(textLine(t, true))
		}
		ln.AppendHistory(strings.ReplaceAll(block, "\n", " "))
	}
}

// readBlock collects prompt lines until a blank line ends the block. A block
// is returned as typed, line breaks included, so positions in the token dump
// match what the user sees.
func readBlock(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(promptMain)
		} else {
			line, err = ln.Prompt(promptCont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if line == "" {
			return b.String(), true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		// single-command lines short-circuit the block
		if b.Len() > 0 && strings.HasPrefix(strings.TrimSpace(b.String()), ":") {
			return b.String(), true
		}
	}
}
