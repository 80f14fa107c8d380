package golfscript

import (
	"math"
	"math/big"
	"sort"
	"strings"
)

// Helper functions

// compare orders items by type rank first, then by value. Strings and
// blocks compare by character, arrays element-wise and then by length.
func compare(a, b Item) int {
	if a.Type() != b.Type() {
		if a.Type() < b.Type() {
			return -1
		}
		return 1
	}
	switch av := a.(type) {
	case *Integer:
		return av.v.Cmp(b.(*Integer).v)
	case *String:
		return strings.Compare(av.s, b.(*String).s)
	case *Block:
		return strings.Compare(av.src, b.(*Block).src)
	case *Array:
		al, bl := av.items, b.(*Array).items
		size := len(al)
		if len(bl) < size {
			size = len(bl)
		}
		for i := 0; i < size; i++ {
			if res := compare(al[i], bl[i]); res != 0 {
				return res
			}
		}
		switch {
		case len(al) < len(bl):
			return -1
		case len(al) > len(bl):
			return 1
		}
	}
	return 0
}

func equals(a, b Item) bool {
	return compare(a, b) == 0
}

func sortItems(l []Item) []Item {
	res := append([]Item(nil), l...)
	sort.SliceStable(res, func(i, j int) bool {
		return compare(res[i], res[j]) < 0
	})
	return res
}

func sortRunes(rs []rune) []rune {
	res := append([]rune(nil), rs...)
	sort.SliceStable(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

func indexOf(l []Item, a Item) int {
	for i, b := range l {
		if equals(a, b) {
			return i
		}
	}
	return -1
}

func contains(l []Item, a Item) bool {
	return indexOf(l, a) >= 0
}

// find returns the position of sub inside s, or -1.
func find(s, sub []Item) int {
outer:
	for i := 0; i+len(sub) <= len(s); i++ {
		for j := range sub {
			if !equals(s[i+j], sub[j]) {
				continue outer
			}
		}
		return i
	}
	return -1
}

// split cuts s at every occurrence of sep and drops empty parts.
func split(s, sep []Item) [][]Item {
	var res [][]Item
	add := func(part []Item) {
		if len(part) > 0 {
			res = append(res, part)
		}
	}
	if len(sep) == 0 {
		for i := range s {
			add(s[i : i+1])
		}
		return res
	}
	x := 0
	for x <= len(s) {
		i := find(s[x:], sep)
		if i < 0 {
			break
		}
		add(s[x : x+i])
		x += i + len(sep)
	}
	add(s[x:])
	return res
}

func splitString(s, sep string) []Item {
	res := []Item{}
	for _, part := range strings.Split(s, sep) {
		if part != "" {
			res = append(res, NewString(part))
		}
	}
	return res
}

// Array set operations. difference keeps multiplicity, the others return
// distinct elements in first-seen order.
func difference(al, bl []Item) []Item {
	res := []Item{}
	for _, a := range al {
		if !contains(bl, a) {
			res = append(res, a)
		}
	}
	return res
}

func distinct(l []Item) []Item {
	res := []Item{}
	for _, a := range l {
		if !contains(res, a) {
			res = append(res, a)
		}
	}
	return res
}

func union(al, bl []Item) []Item {
	return distinct(append(append([]Item(nil), al...), bl...))
}

func intersect(al, bl []Item) []Item {
	res := []Item{}
	for _, a := range al {
		if contains(bl, a) && !contains(res, a) {
			res = append(res, a)
		}
	}
	return res
}

func symmetricDifference(al, bl []Item) []Item {
	return append(distinct(difference(al, bl)), distinct(difference(bl, al))...)
}

// Character set operations, one occurrence per distinct character.
func runeSet(rs []rune) map[rune]bool {
	set := make(map[rune]bool, len(rs))
	for _, r := range rs {
		set[r] = true
	}
	return set
}

func runeFilter(rs []rune, keep func(rune) bool) []rune {
	res := []rune{}
	seen := make(map[rune]bool)
	for _, r := range rs {
		if keep(r) && !seen[r] {
			seen[r] = true
			res = append(res, r)
		}
	}
	return res
}

func runeDifference(a, b []rune) []rune {
	bs := runeSet(b)
	return runeFilter(a, func(r rune) bool { return !bs[r] })
}

func runeIntersect(a, b []rune) []rune {
	bs := runeSet(b)
	return runeFilter(a, func(r rune) bool { return bs[r] })
}

func runeUnion(a, b []rune) []rune {
	return runeFilter(append(append([]rune(nil), a...), b...), func(rune) bool { return true })
}

func runeSymmetricDifference(a, b []rune) []rune {
	return runeUnion(runeDifference(a, b), runeDifference(b, a))
}

func charItems(rs []rune) []Item {
	res := make([]Item, len(rs))
	for i, r := range rs {
		res[i] = Int(int64(r))
	}
	return res
}

// Index arithmetic

// toInt saturates n to the int range.
func toInt(n *big.Int) int {
	switch {
	case n.IsInt64() && n.Int64() <= math.MaxInt && n.Int64() >= math.MinInt:
		return int(n.Int64())
	case n.Sign() < 0:
		return math.MinInt
	}
	return math.MaxInt
}

// adjustInd clamps a possibly negative element index into [0, size-1].
func adjustInd(ind, size int) int {
	if ind < 0 {
		ind += size
		if ind < 0 {
			ind = 0
		}
	} else if ind >= size {
		ind = size - 1
	}
	return ind
}

// prefixLen is how many leading elements `<` keeps; suffixStart is where the
// part kept by `>` starts. A zero count keeps nothing.
func prefixLen(n, size int) int {
	switch {
	case n > 0:
		return min(n, size)
	case n < 0:
		return max(size+max(n, -size), 0)
	}
	return 0
}

func suffixStart(n, size int) int {
	switch {
	case n > 0:
		return min(n, size)
	case n < 0:
		return max(size+max(n, -size), 0)
	}
	return size
}

func Range(n int) []Item {
	res := make([]Item, 0, max(n, 0))
	for i := 0; i < n; i++ {
		res = append(res, Int(int64(i)))
	}
	return res
}

func isVarchar(c rune) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isOctal(c rune) bool {
	return c >= '0' && c <= '7'
}

// concat copies its arguments into a new slice so no array shares spare
// capacity with another.
func concat(ls ...[]Item) []Item {
	n := 0
	for _, l := range ls {
		n += len(l)
	}
	res := make([]Item, 0, n)
	for _, l := range ls {
		res = append(res, l...)
	}
	return res
}
