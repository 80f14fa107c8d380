package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"golang.org/x/term"

	"github.com/Starklosch/Golfscript/config"
	golfscript "github.com/Starklosch/Golfscript/core"
)

// Main
const VERSION = "1.0"

var log = commonlog.GetLogger("golfscript.cli")

// codeList collects repeated -c flags in order.
type codeList []string

func (c *codeList) String() string { return strings.Join(*c, " ") }
func (c *codeList) Set(s string) error {
	*c = append(*c, s)
	return nil
}

// verbosity counts repeated -v flags.
type verbosity int

func (v *verbosity) String() string   { return strconv.Itoa(int(*v)) }
func (v *verbosity) IsBoolFlag() bool { return true }
func (v *verbosity) Set(s string) error {
	if s == "true" {
		*v++
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*v = verbosity(n)
	return nil
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		`Usage: %s [OPTION]... [FILE]...
Run GolfScript programs.

With no code and no files the REPL is entered, unless standard input is not a
terminal, in which case the program is read from it. Code pieces run in order
against the same stack; the stack is printed after each one, then whatever
-reset names is cleared.

Options:
`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	var codes codeList
	var verbose verbosity
	flag.Var(&codes, "c", "run `code` (repeatable)")
	replFlag := flag.Bool("i", false, "enter the REPL after running code and files")
	cfgPath := flag.String("config", "", "configuration `file` (default: golfscript.toml or .yaml found upwards)")
	native := flag.Bool("native", false, "print the stack in native form")
	flag.Var(&verbose, "v", "increase log verbosity (repeatable)")
	reset := flag.String("reset", "", "clear `what` (stack, vars, comma separated) after each code piece and REPL line")
	version := flag.Bool("version", false, "show the version number and exit")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println("GolfScript v" + VERSION)
		return
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *native {
		cfg.Output.Native = true
	}
	if *reset != "" {
		cfg.REPL.Reset = strings.Split(*reset, ",")
	}
	resetOpts, err := cfg.ResetOptions()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var logPath *string
	if cfg.Log.File != "" {
		logPath = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity+int(verbose), logPath)
	if cfg.Path != "" {
		log.Infof("configuration: %s", cfg.Path)
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT)
	go func() {
		<-signals
		exit(130)
	}()

	in := newInterp(cfg)
	status, ran := 0, false
	for i, code := range codes {
		if !runCode(in, fmt.Sprintf("<code#%d>", i+1), code, cfg) {
			status = 1
		}
		in.Clear(resetOpts)
		ran = true
	}
	for _, fname := range flag.Args() {
		data, err := os.ReadFile(fname)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			status = 1
			continue
		}
		if !runCode(in, fname, string(data), cfg) {
			status = 1
		}
		in.Clear(resetOpts)
		ran = true
	}
	if !ran && !term.IsTerminal(int(os.Stdin.Fd())) {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if !runCode(in, "<stdin>", string(data), cfg) {
			status = 1
		}
		ran = true
	}

	if !ran || *replFlag {
		signal.Stop(signals)
		status = repl(in, cfg, resetOpts)
	}
	os.Exit(status)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	wd, err := os.Getwd()
	if err != nil {
		return config.Default(), nil
	}
	return config.FindAndLoad(wd)
}

// newInterp builds the interpreter and binds the prelude.
func newInterp(cfg *config.Config) *golfscript.Interp {
	icfg := cfg.InterpConfig()
	icfg.OnError = func(_, message string) {
		fmt.Fprintln(os.Stderr, "error: "+message)
	}
	in := golfscript.New(icfg)

	names := make([]string, 0, len(cfg.Prelude))
	for name := range cfg.Prelude {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		log.Debugf("prelude: %s = {%s}", name, cfg.Prelude[name])
		in.Define(name, cfg.Prelude[name])
	}
	return in
}

// runCode runs one program and prints the resulting stack. It reports
// whether the program finished without a runtime error.
func runCode(in *golfscript.Interp, name, code string, cfg *config.Config) bool {
	log.Debugf("running %s", name)
	err := in.Run(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
	}
	fmt.Println(dump(in, cfg.Output.Native))
	return err == nil
}

func dump(in *golfscript.Interp, native bool) string {
	if native {
		return in.Stack().Native()
	}
	return in.Stack().String()
}

func exit(code int) {
	fmt.Println()
	os.Exit(code)
}
