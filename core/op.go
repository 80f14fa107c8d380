package golfscript

import (
	"errors"
	"sort"
)

// Operator//
// Func receives its operands top first: x[0] is the item that was on top of
// the stack. It returns the items to push. Returning errNoMatch leaves the
// stack exactly as it was before the call.
type Op struct {
	Name  string
	Arity int
	Func  func(in *Interp, x []Item) ([]Item, error)
}

func (op *Op) String() string {
	return op.Name
}

var OPS = make(map[string]*Op)

// Multi-character operator names, longest first.
var keywords []string

func addOp(op *Op) {
	if _, ok := OPS[op.Name]; ok {
		panic("Duplicate: " + op.Name + "!")
	}
	OPS[op.Name] = op
	if len(op.Name) > 1 {
		keywords = append(keywords, op.Name)
		sort.SliceStable(keywords, func(i, j int) bool {
			return len(keywords[i]) > len(keywords[j])
		})
	}
}

func findOp(name string) (*Op, bool) {
	op, ok := OPS[name]
	return op, ok
}

func matchKeyword(src string) string {
	for _, kw := range keywords {
		if len(src) >= len(kw) && src[:len(kw)] == kw {
			return kw
		}
	}
	return ""
}

func wraps(as ...Item) []Item {
	return as
}

// Run pops the operands, calls the function and pushes its results. Too few
// operands or no matching rule is a silent no-op.
func (op *Op) Run(in *Interp) error {
	if in.stack.Size() < op.Arity {
		log.Debugf("%s: %d operand(s) needed, %d on stack", op.Name, op.Arity, in.stack.Size())
		return nil
	}
	x := make([]Item, op.Arity)
	for i := range x {
		x[i], _ = in.stack.Pop()
	}

	res, err := op.Func(in, x)
	if errors.Is(err, errNoMatch) {
		log.Debugf("%s: no rule for %s", op.Name, typeNames(x))
		for i := len(x) - 1; i >= 0; i-- {
			in.stack.Push(x[i])
		}
		return nil
	}
	if err != nil {
		return err
	}
	in.stack.Pusha(res...)
	return nil
}

func typeNames(x []Item) []string {
	names := make([]string, len(x))
	for i, a := range x {
		names[i] = a.Type().String()
	}
	return names
}

// Operand ordering//
// coerce converts the lower ranked of a and b to the other's type and
// returns the common type.
func coerce(a, b Item) (Item, Item, Type, error) {
	var err error
	switch {
	case a.Type() < b.Type():
		a, err = Coerce(a, b.Type())
	case a.Type() > b.Type():
		b, err = Coerce(b, a.Type())
	}
	if err != nil {
		return nil, nil, 0, err
	}
	return a, b, a.Type(), nil
}

// order returns the operands higher ranked first. For equal types the
// original order is kept.
func order(a, b Item) (hi, lo Item) {
	if a.Type() < b.Type() {
		return b, a
	}
	return a, b
}

type pair struct {
	hi, lo Type
}

func pairOf(hi, lo Item) pair {
	return pair{hi.Type(), lo.Type()}
}
