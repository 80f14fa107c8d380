// Package golfscript implements the GolfScript language: a stack of integers,
// strings, blocks and arrays driven by single character operators.
//
//	in := golfscript.New(golfscript.Config{})
//	if err := in.Run("[1 2 3]{+}*"); err != nil {
//		...
//	}
//	fmt.Println(in.Stack()) // [6]
//
// Operators that find too few or unsuitable operands do nothing. Only invalid
// coercions and runaway recursion make Run return an error.
package golfscript

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("golfscript")

const DefaultMaxDepth = 2048

// MaxItems bounds the length of sequences built by repetition and ranges.
const MaxItems = 1 << 26

type Config struct {
	// Output receives what print writes. Defaults to os.Stdout.
	Output io.Writer
	// MaxDepth bounds nested block evaluation. Defaults to DefaultMaxDepth.
	MaxDepth int
	// Seed for rand. Zero seeds from the clock.
	Seed int64
	// OnError is told about lexical errors.
	OnError ErrorHandler
}

// Interp is one interpreter instance. It owns the stack and the variables and
// is not safe for concurrent use.
type Interp struct {
	stack *Stack
	env   *Environ
	rand  *rand.Rand
	out   io.Writer

	onError  ErrorHandler
	maxDepth int
	depth    int

	// Sources bound with Define. They survive ResetVars.
	defines map[string]string
}

func New(cfg Config) *Interp {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = DefaultMaxDepth
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return &Interp{
		stack:    NewStack(),
		env:      NewEnviron(),
		rand:     rand.New(rand.NewSource(cfg.Seed)),
		out:      cfg.Output,
		onError:  cfg.OnError,
		maxDepth: cfg.MaxDepth,
		defines:  make(map[string]string),
	}
}

func (in *Interp) Stack() *Stack {
	return in.stack
}

func (in *Interp) Env() *Environ {
	return in.env
}

// Define binds name to the block with the given source, as `{src}:name;`
// would.
func (in *Interp) Define(name, src string) {
	in.defines[name] = src
	in.env.SetVar(name, NewBlock(src))
}

// Run tokenizes and evaluates src against the current stack.
func (in *Interp) Run(src string) error {
	if err := in.run(src); err != nil {
		return fmt.Errorf("golfscript: %w", err)
	}
	return nil
}

// Incomplete reports whether src stops inside an open block or string.
func (in *Interp) Incomplete(src string) bool {
	return Incomplete(src, in.env)
}

// Clear resets the parts selected by opts. ResetVars forgets every name
// declared by programs; the builtin words and the names bound with Define get
// their original values back.
func (in *Interp) Clear(opts int) {
	if opts&ResetStack != 0 {
		in.stack.Clear()
	}
	if opts&ResetVars != 0 {
		for _, name := range in.env.Names() {
			if a, ok := in.initialVar(name); ok {
				in.env.SetVar(name, a)
			} else {
				in.env.Unset(name)
			}
		}
	}
}

func (in *Interp) initialVar(name string) (Item, bool) {
	if src, ok := in.defines[name]; ok {
		return NewBlock(src), true
	}
	return defaultVar(name)
}

func (in *Interp) run(src string) error {
	if in.depth >= in.maxDepth {
		return ErrRecursionTooDeep
	}
	in.depth++
	defer func() { in.depth-- }()

	log.Debugf("run depth=%d: %s", in.depth, src)
	return NewParser(in, src).Parse()
}

func (in *Interp) reportError(src string, e *LexError) {
	log.Debugf("lexical error: %s", e)
	if in.onError != nil {
		in.onError(src, e.Error())
	}
}
