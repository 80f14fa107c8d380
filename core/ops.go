package golfscript

import (
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"
)

func init() {
	InitFuncs()
}

// Functions
func InitFuncs() {
	// Note:
	// 1. x[0] is the operand that was on top of the stack, x[1] the one below;
	//
	// 2. Returning errNoMatch puts the operands back untouched;
	//
	// 3. The ordering operators switch on pairOf(order(below, top)), so a rule
	//    for (Array, Int) also covers the operands pushed the other way round.
	//
	// Symbol operators//
	addOp(&Op{"!", 1, func(in *Interp, x []Item) ([]Item, error) {
		// Logical NOT
		return wraps(boolInt(!x[0].Truthy())), nil
	}})

	addOp(&Op{"$", 1, opSort})

	addOp(&Op{"%", 2, func(in *Interp, x []Item) ([]Item, error) {
		a, b := x[1], x[0]
		hi, lo := order(a, b)
		switch pairOf(hi, lo) {
		case pair{TypeInteger, TypeInteger}:
			// Modulus, truncated toward zero
			if b.(*Integer).v.Sign() == 0 {
				return nil, errNoMatch
			}
			return wraps(NewInteger(new(big.Int).Rem(a.(*Integer).v, b.(*Integer).v))), nil

		case pair{TypeString, TypeString}:
			// Split dropping empty parts
			return wraps(NewArray(splitString(a.(*String).s, b.(*String).s))), nil

		case pair{TypeArray, TypeBlock}:
			// Map
			res, err := in.mapItems(lo.(*Block), hi.(*Array).items)
			if err != nil {
				return nil, err
			}
			return wraps(res), nil

		case pair{TypeBlock, TypeString}:
			// Map over characters
			res, err := in.mapItems(hi.(*Block), charItems(lo.(*String).Runes()))
			if err != nil {
				return nil, err
			}
			return wraps(NewString(res.chars())), nil

		case pair{TypeArray, TypeInteger}:
			// Every n-th element, backwards for negative n
			n := toInt(lo.(*Integer).v)
			if n == 0 {
				return nil, errNoMatch
			}
			return wraps(NewArray(step(hi.(*Array).items, n))), nil

		case pair{TypeArray, TypeArray}:
			return wraps(NewArray(splitArrays(a.(*Array).items, b.(*Array).items))), nil
		}
		return nil, errNoMatch
	}})

	addOp(&Op{"&", 2, setOp(
		func(a, b *big.Int) *big.Int { return new(big.Int).And(a, b) },
		intersect, runeIntersect)})

	addOp(&Op{"(", 1, func(in *Interp, x []Item) ([]Item, error) {
		switch a := x[0].(type) {
		case *Integer:
			// Decrement
			return wraps(NewInteger(new(big.Int).Sub(a.v, big.NewInt(1)))), nil
		case *Array:
			// Uncons from the front
			if len(a.items) == 0 {
				return nil, errNoMatch
			}
			return wraps(NewArray(a.items[1:]), a.items[0]), nil
		case *String:
			rs := a.Runes()
			if len(rs) == 0 {
				return nil, errNoMatch
			}
			return wraps(runesString(rs[1:]), Int(int64(rs[0]))), nil
		}
		return nil, errNoMatch
	}})

	addOp(&Op{")", 1, func(in *Interp, x []Item) ([]Item, error) {
		switch a := x[0].(type) {
		case *Integer:
			// Increment
			return wraps(NewInteger(new(big.Int).Add(a.v, big.NewInt(1)))), nil
		case *Array:
			// Uncons from the back
			n := len(a.items)
			if n == 0 {
				return nil, errNoMatch
			}
			return wraps(NewArray(a.items[:n-1:n-1]), a.items[n-1]), nil
		case *String:
			rs := a.Runes()
			if len(rs) == 0 {
				return nil, errNoMatch
			}
			return wraps(runesString(rs[:len(rs)-1]), Int(int64(rs[len(rs)-1]))), nil
		}
		return nil, errNoMatch
	}})

	addOp(&Op{"*", 2, func(in *Interp, x []Item) ([]Item, error) {
		a, b := x[1], x[0]
		hi, lo := order(a, b)
		switch pairOf(hi, lo) {
		case pair{TypeInteger, TypeInteger}:
			// Product
			return wraps(NewInteger(new(big.Int).Mul(a.(*Integer).v, b.(*Integer).v))), nil

		case pair{TypeBlock, TypeInteger}:
			// Run n times
			body := hi.(*Block)
			for i, n := 0, toInt(lo.(*Integer).v); i < n; i++ {
				if err := in.runBlock(body); err != nil {
					return nil, err
				}
			}
			return nil, nil

		case pair{TypeArray, TypeInteger}:
			// Repeat
			items := hi.(*Array).items
			n, ok := repeatCount(lo.(*Integer).v, len(items))
			if !ok {
				return nil, errNoMatch
			}
			res := make([]Item, 0, len(items)*n)
			for i := 0; i < n; i++ {
				res = append(res, items...)
			}
			return wraps(NewArray(res)), nil

		case pair{TypeString, TypeInteger}:
			s := hi.(*String).s
			n, ok := repeatCount(lo.(*Integer).v, len(s))
			if !ok {
				return nil, errNoMatch
			}
			return wraps(NewString(strings.Repeat(s, n))), nil

		case pair{TypeString, TypeString}:
			// Join characters with the top string
			rs := a.(*String).Runes()
			parts := make([]string, len(rs))
			for i, r := range rs {
				parts[i] = string(r)
			}
			return wraps(NewString(strings.Join(parts, b.(*String).s))), nil

		case pair{TypeArray, TypeString}:
			// Join elements as text
			items := hi.(*Array).items
			parts := make([]string, len(items))
			for i, it := range items {
				s, err := Coerce(it, TypeString)
				if err != nil {
					return nil, err
				}
				parts[i] = s.(*String).s
			}
			return wraps(NewString(strings.Join(parts, lo.(*String).s))), nil

		case pair{TypeArray, TypeArray}:
			// Join with the top array, splicing nested arrays
			sep := b.(*Array).items
			res := []Item{}
			for i, it := range a.(*Array).items {
				if i > 0 {
					res = append(res, sep...)
				}
				if l, ok := it.(*Array); ok {
					res = append(res, l.items...)
				} else {
					res = append(res, it)
				}
			}
			return wraps(NewArray(res)), nil

		case pair{TypeArray, TypeBlock}:
			// Fold
			return nil, in.fold(lo.(*Block), hi.(*Array).items)

		case pair{TypeBlock, TypeString}:
			return nil, in.fold(hi.(*Block), charItems(lo.(*String).Runes()))
		}
		return nil, errNoMatch
	}})

	addOp(&Op{"+", 2, coerceOp(func(a, b Item, t Type) (Item, bool) {
		switch t {
		case TypeInteger:
			return NewInteger(new(big.Int).Add(a.(*Integer).v, b.(*Integer).v)), true
		case TypeString:
			return NewString(a.(*String).s + b.(*String).s), true
		case TypeBlock:
			return NewBlock(a.(*Block).src + " " + b.(*Block).src), true
		case TypeArray:
			return NewArray(concat(a.(*Array).items, b.(*Array).items)), true
		}
		return nil, false
	})})

	addOp(&Op{",", 1, func(in *Interp, x []Item) ([]Item, error) {
		switch a := x[0].(type) {
		case *Integer:
			// Range
			n := toInt(a.v)
			if n > MaxItems {
				return nil, errNoMatch
			}
			return wraps(NewArray(Range(n))), nil
		case *String:
			return wraps(Int(int64(a.Len()))), nil
		case *Array:
			return wraps(Int(int64(a.Len()))), nil
		case *Block:
			// Select from the item below
			switch l := peekBelow(in).(type) {
			case *Array:
				in.stack.Pop()
				res, err := in.filter(a, l.items)
				if err != nil {
					return nil, err
				}
				return wraps(NewArray(res)), nil
			case *String:
				in.stack.Pop()
				res, err := in.filter(a, charItems(l.Runes()))
				if err != nil {
					return nil, err
				}
				return wraps(NewString(NewArray(res).chars())), nil
			}
		}
		return nil, errNoMatch
	}})

	addOp(&Op{"-", 2, coerceOp(func(a, b Item, t Type) (Item, bool) {
		switch t {
		case TypeInteger:
			return NewInteger(new(big.Int).Sub(a.(*Integer).v, b.(*Integer).v)), true
		case TypeString, TypeBlock:
			return sameText(a, runeDifference(textOf(a), textOf(b))), true
		case TypeArray:
			return NewArray(difference(a.(*Array).items, b.(*Array).items)), true
		}
		return nil, false
	})})

	addOp(&Op{".", 1, func(in *Interp, x []Item) ([]Item, error) {
		// Duplicate
		return wraps(x[0], x[0]), nil
	}})

	addOp(&Op{"/", 2, func(in *Interp, x []Item) ([]Item, error) {
		a, b := x[1], x[0]
		hi, lo := order(a, b)
		switch pairOf(hi, lo) {
		case pair{TypeInteger, TypeInteger}:
			// Quotient, truncated toward zero
			if b.(*Integer).v.Sign() == 0 {
				return nil, errNoMatch
			}
			return wraps(NewInteger(new(big.Int).Quo(a.(*Integer).v, b.(*Integer).v))), nil

		case pair{TypeString, TypeString}:
			return wraps(NewArray(splitString(a.(*String).s, b.(*String).s))), nil

		case pair{TypeArray, TypeBlock}:
			// Each
			return nil, in.each(lo.(*Block), hi.(*Array).items)

		case pair{TypeBlock, TypeString}:
			return nil, in.each(hi.(*Block), charItems(lo.(*String).Runes()))

		case pair{TypeBlock, TypeBlock}:
			// Unfold: the block below is the condition
			res, err := in.unfold(a.(*Block), b.(*Block))
			if err != nil {
				return nil, err
			}
			return wraps(res), nil

		case pair{TypeArray, TypeInteger}:
			// Chunks of n
			n := toInt(lo.(*Integer).v)
			if n <= 0 {
				return nil, errNoMatch
			}
			return wraps(NewArray(chunk(hi.(*Array).items, n))), nil

		case pair{TypeArray, TypeArray}:
			return wraps(NewArray(splitArrays(a.(*Array).items, b.(*Array).items))), nil
		}
		return nil, errNoMatch
	}})

	addOp(&Op{";", 1, func(in *Interp, x []Item) ([]Item, error) {
		// Pop
		return nil, nil
	}})

	addOp(&Op{"<", 2, compareOp(func(c int) bool { return c < 0 }, func(n, size int) (int, int) {
		return 0, prefixLen(n, size)
	})})

	addOp(&Op{"=", 2, func(in *Interp, x []Item) ([]Item, error) {
		a, b := x[1], x[0]
		if a.Type() == b.Type() {
			return wraps(boolInt(equals(a, b))), nil
		}
		hi, lo := order(a, b)
		n, ok := lo.(*Integer)
		if !ok {
			return nil, errNoMatch
		}
		switch l := hi.(type) {
		case *Array:
			// Element at index
			if len(l.items) == 0 {
				return nil, errNoMatch
			}
			return wraps(l.items[adjustInd(toInt(n.v), len(l.items))]), nil
		case *String, *Block:
			rs := textOf(l)
			if len(rs) == 0 {
				return nil, errNoMatch
			}
			return wraps(Int(int64(rs[adjustInd(toInt(n.v), len(rs))]))), nil
		}
		return nil, errNoMatch
	}})

	addOp(&Op{">", 2, compareOp(func(c int) bool { return c > 0 }, func(n, size int) (int, int) {
		return suffixStart(n, size), size
	})})

	addOp(&Op{"?", 2, func(in *Interp, x []Item) ([]Item, error) {
		a, b := x[1], x[0]
		hi, lo := order(a, b)
		switch pairOf(hi, lo) {
		case pair{TypeInteger, TypeInteger}:
			// Power
			if b.(*Integer).v.Sign() < 0 {
				return nil, errNoMatch
			}
			return wraps(NewInteger(new(big.Int).Exp(a.(*Integer).v, b.(*Integer).v, nil))), nil

		case pair{TypeString, TypeString}:
			// Substring position in characters
			s := a.(*String).s
			i := strings.Index(s, b.(*String).s)
			if i > 0 {
				i = utf8.RuneCountInString(s[:i])
			}
			return wraps(Int(int64(i))), nil

		case pair{TypeArray, TypeBlock}:
			// First element satisfying the block
			it, ok, err := in.findFirst(lo.(*Block), hi.(*Array).items)
			if err != nil || !ok {
				return nil, err
			}
			return wraps(it), nil

		case pair{TypeArray, TypeArray}:
			return wraps(Int(int64(indexOf(a.(*Array).items, b)))), nil
		}
		if l, ok := hi.(*Array); ok {
			// Element position
			return wraps(Int(int64(indexOf(l.items, lo)))), nil
		}
		return nil, errNoMatch
	}})

	addOp(&Op{"@", 3, func(in *Interp, x []Item) ([]Item, error) {
		// Rotate the third item to the top
		return wraps(x[1], x[0], x[2]), nil
	}})

	addOp(&Op{"\\", 2, func(in *Interp, x []Item) ([]Item, error) {
		// Swap
		return wraps(x[0], x[1]), nil
	}})

	addOp(&Op{"^", 2, setOp(
		func(a, b *big.Int) *big.Int { return new(big.Int).Xor(a, b) },
		symmetricDifference, runeSymmetricDifference)})

	addOp(&Op{"`", 1, func(in *Interp, x []Item) ([]Item, error) {
		// Inspect
		return wraps(NewString(x[0].Inspect())), nil
	}})

	addOp(&Op{"|", 2, setOp(
		func(a, b *big.Int) *big.Int { return new(big.Int).Or(a, b) },
		union, runeUnion)})

	addOp(&Op{"~", 1, func(in *Interp, x []Item) ([]Item, error) {
		switch a := x[0].(type) {
		case *Integer:
			// Bitwise NOT
			return wraps(NewInteger(new(big.Int).Not(a.v))), nil
		case *String:
			// Evaluate
			return nil, in.run(a.s)
		case *Block:
			return nil, in.runBlock(a)
		case *Array:
			// Dump
			return wraps(a.items...), nil
		}
		return nil, errNoMatch
	}})

	// Named operators//
	addOp(&Op{"abs", 1, func(in *Interp, x []Item) ([]Item, error) {
		a, ok := x[0].(*Integer)
		if !ok {
			return nil, errNoMatch
		}
		return wraps(NewInteger(new(big.Int).Abs(a.v))), nil
	}})

	addOp(&Op{"base", 2, func(in *Interp, x []Item) ([]Item, error) {
		base, ok := x[0].(*Integer)
		if !ok || base.v.Cmp(big.NewInt(2)) < 0 {
			return nil, errNoMatch
		}
		switch a := x[1].(type) {
		case *Integer:
			// Digits of a non-negative number
			if a.v.Sign() < 0 {
				return nil, errNoMatch
			}
			return wraps(NewArray(toDigits(a.v, base.v))), nil
		case *Array:
			// Number from digits
			n, ok := fromDigits(a.items, base.v)
			if !ok {
				return nil, errNoMatch
			}
			return wraps(NewInteger(n)), nil
		}
		return nil, errNoMatch
	}})

	addOp(&Op{"do", 1, func(in *Interp, x []Item) ([]Item, error) {
		body, ok := x[0].(*Block)
		if !ok {
			return nil, errNoMatch
		}
		return nil, in.doLoop(body)
	}})

	addOp(&Op{"if", 3, func(in *Interp, x []Item) ([]Item, error) {
		cond, then, els := x[2], x[1], x[0]
		if cond.Truthy() {
			return nil, in.runItem(then)
		}
		return nil, in.runItem(els)
	}})

	addOp(&Op{"print", 1, func(in *Interp, x []Item) ([]Item, error) {
		if _, err := fmt.Fprint(in.out, x[0].Native()); err != nil {
			return nil, err
		}
		return nil, nil
	}})

	addOp(&Op{"rand", 1, func(in *Interp, x []Item) ([]Item, error) {
		n, ok := x[0].(*Integer)
		if !ok || n.v.Sign() <= 0 {
			return nil, errNoMatch
		}
		return wraps(NewInteger(new(big.Int).Rand(in.rand, n.v))), nil
	}})

	addOp(&Op{"until", 2, loopOp(false)})
	addOp(&Op{"while", 2, loopOp(true)})

	addOp(&Op{"zip", 1, func(in *Interp, x []Item) ([]Item, error) {
		a, ok := x[0].(*Array)
		if !ok {
			return nil, errNoMatch
		}
		res, ok := zip(a.items)
		if !ok {
			return nil, errNoMatch
		}
		return wraps(NewArray(res)), nil
	}})
}

// opSort handles `$`: copy from the stack, sort, or sort by a key block.
func opSort(in *Interp, x []Item) ([]Item, error) {
	switch a := x[0].(type) {
	case *Integer:
		n := toInt(a.v)
		if n < 0 {
			return nil, errNoMatch
		}
		it, ok := in.stack.Peek(n)
		if !ok {
			return nil, errNoMatch
		}
		return wraps(it), nil
	case *String:
		return wraps(runesString(sortRunes(a.Runes()))), nil
	case *Array:
		return wraps(NewArray(sortItems(a.items))), nil
	case *Block:
		if l, ok := peekBelow(in).(*Array); ok {
			in.stack.Pop()
			res, err := in.sortBy(a, l.items)
			if err != nil {
				return nil, err
			}
			return wraps(NewArray(res)), nil
		}
		return wraps(NewBlock(string(sortRunes(a.Runes())))), nil
	}
	return nil, errNoMatch
}

// repeatCount bounds the repeat count for a sequence of size elements. An
// empty sequence or a count below one repeats zero times; a result longer
// than MaxItems has no rule.
func repeatCount(n *big.Int, size int) (int, bool) {
	if size == 0 || n.Sign() <= 0 {
		return 0, true
	}
	if !n.IsInt64() || n.Int64() > int64(MaxItems/size) {
		return 0, false
	}
	return int(n.Int64()), true
}

// peekBelow returns the item now on top, which was below the popped operand.
func peekBelow(in *Interp) Item {
	a, _ := in.stack.Peek(0)
	return a
}

// coerceOp builds the function of an operator that first converts both
// operands to their common type.
func coerceOp(f func(a, b Item, t Type) (Item, bool)) func(*Interp, []Item) ([]Item, error) {
	return func(in *Interp, x []Item) ([]Item, error) {
		a, b, t, err := coerce(x[1], x[0])
		if err != nil {
			return nil, err
		}
		res, ok := f(a, b, t)
		if !ok {
			return nil, errNoMatch
		}
		return wraps(res), nil
	}
}

// setOp covers `| & ^`: bitwise on integers, set operations otherwise.
func setOp(bits func(a, b *big.Int) *big.Int, list func(al, bl []Item) []Item, text func(a, b []rune) []rune) func(*Interp, []Item) ([]Item, error) {
	return coerceOp(func(a, b Item, t Type) (Item, bool) {
		switch t {
		case TypeInteger:
			return NewInteger(bits(a.(*Integer).v, b.(*Integer).v)), true
		case TypeString, TypeBlock:
			return sameText(a, text(textOf(a), textOf(b))), true
		case TypeArray:
			return NewArray(list(a.(*Array).items, b.(*Array).items)), true
		}
		return nil, false
	})
}

// compareOp covers `<` and `>`: comparison between equal types, slicing of a
// sequence by an integer.
func compareOp(want func(int) bool, bounds func(n, size int) (int, int)) func(*Interp, []Item) ([]Item, error) {
	return func(in *Interp, x []Item) ([]Item, error) {
		a, b := x[1], x[0]
		if a.Type() == b.Type() {
			return wraps(boolInt(want(compare(a, b)))), nil
		}
		hi, lo := order(a, b)
		n, ok := lo.(*Integer)
		if !ok {
			return nil, errNoMatch
		}
		switch l := hi.(type) {
		case *Array:
			s, e := bounds(toInt(n.v), len(l.items))
			return wraps(NewArray(l.items[s:e:e])), nil
		case *String, *Block:
			rs := textOf(l)
			s, e := bounds(toInt(n.v), len(rs))
			return wraps(sameText(l, rs[s:e])), nil
		}
		return nil, errNoMatch
	}
}

func loopOp(want bool) func(*Interp, []Item) ([]Item, error) {
	return func(in *Interp, x []Item) ([]Item, error) {
		cond, ok1 := x[1].(*Block)
		body, ok2 := x[0].(*Block)
		if !ok1 || !ok2 {
			return nil, errNoMatch
		}
		return nil, in.whileLoop(cond, body, want)
	}
}

func step(items []Item, n int) []Item {
	res := []Item{}
	switch {
	case n > 0:
		for i := 0; i < len(items); i += n {
			res = append(res, items[i])
		}
	case n < 0:
		for i := len(items) - 1; i >= 0; i += max(n, -len(items)-1) {
			res = append(res, items[i])
		}
	}
	return res
}

func chunk(items []Item, n int) []Item {
	res := []Item{}
	for i := 0; i < len(items); i += n {
		e := min(i+n, len(items))
		res = append(res, NewArray(items[i:e:e]))
	}
	return res
}

func splitArrays(s, sep []Item) []Item {
	parts := split(s, sep)
	res := make([]Item, len(parts))
	for i, p := range parts {
		res[i] = NewArray(p[:len(p):len(p)])
	}
	return res
}

func toDigits(n, base *big.Int) []Item {
	if n.Sign() == 0 {
		return wraps(Int(0))
	}
	var rev []Item
	q, r := new(big.Int).Set(n), new(big.Int)
	for q.Sign() > 0 {
		q.QuoRem(q, base, r)
		rev = append(rev, NewInteger(new(big.Int).Set(r)))
	}
	res := make([]Item, len(rev))
	for i, d := range rev {
		res[len(rev)-1-i] = d
	}
	return res
}

func fromDigits(items []Item, base *big.Int) (*big.Int, bool) {
	n := new(big.Int)
	for _, it := range items {
		d, ok := it.(*Integer)
		if !ok {
			return nil, false
		}
		n.Mul(n, base).Add(n, d.v)
	}
	return n, true
}

// zip transposes rows of arrays or strings. Each column takes the type of the
// first row.
func zip(rows []Item) ([]Item, bool) {
	if len(rows) == 0 {
		return []Item{}, true
	}
	var cols [][]Item
	for _, row := range rows {
		var elems []Item
		switch r := row.(type) {
		case *Array:
			elems = r.items
		case *String:
			elems = charItems(r.Runes())
		default:
			return nil, false
		}
		for j, e := range elems {
			if j >= len(cols) {
				cols = append(cols, nil)
			}
			cols[j] = append(cols[j], e)
		}
	}
	_, text := rows[0].(*String)
	res := make([]Item, len(cols))
	for i, col := range cols {
		if text {
			res[i] = NewString(NewArray(col).chars())
		} else {
			res[i] = NewArray(col)
		}
	}
	return res, true
}
