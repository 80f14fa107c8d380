package golfscript

import "strings"

// Environ maps identifier names to bound items. Operator glyphs and keywords
// are not stored here; a name bound here shadows them in the tokenizer.
type Environ struct {
	vars  map[string]Item
	order []string // declaration order, most recent last
}

func NewEnviron() *Environ {
	env := &Environ{}
	env.InitVars()
	return env
}

// Builtin words that are defined in the language itself.
var defaultVars = []struct {
	name string
	item Item
}{
	{"n", NewString("\n")},
	{"puts", NewBlock("print n print")},
	{"p", NewBlock("`puts")},
	{"and", NewBlock("1$if")},
	{"or", NewBlock("1$\\if")},
	{"xor", NewBlock("\\!!{!}*")},
}

func defaultVar(name string) (Item, bool) {
	for _, v := range defaultVars {
		if v.name == name {
			return v.item, true
		}
	}
	return nil, false
}

func (env *Environ) InitVars() {
	env.vars = make(map[string]Item)
	env.order = nil
	for _, v := range defaultVars {
		env.SetVar(v.name, v.item)
	}
}

func (env *Environ) GetVar(name string) (Item, bool) {
	a, ok := env.vars[name]
	return a, ok
}

func (env *Environ) SetVar(name string, a Item) {
	if _, ok := env.vars[name]; ok {
		for i, n := range env.order {
			if n == name {
				env.order = append(env.order[:i], env.order[i+1:]...)
				break
			}
		}
	}
	env.vars[name] = a
	env.order = append(env.order, name)
}

// Unset removes a binding; the name no longer shadows anything.
func (env *Environ) Unset(name string) {
	if _, ok := env.vars[name]; !ok {
		return
	}
	delete(env.vars, name)
	for i, n := range env.order {
		if n == name {
			env.order = append(env.order[:i], env.order[i+1:]...)
			break
		}
	}
}

// Names lists bound names in declaration order.
func (env *Environ) Names() []string {
	return append([]string(nil), env.order...)
}

// Match returns the longest bound name that src starts with. Among names of
// equal length the most recently declared wins.
func (env *Environ) Match(src string) (string, bool) {
	best := ""
	for i := len(env.order) - 1; i >= 0; i-- {
		name := env.order[i]
		if len(name) > len(best) && strings.HasPrefix(src, name) {
			best = name
		}
	}
	return best, best != ""
}

const (
	ResetStack = 1 << iota
	ResetVars
)
