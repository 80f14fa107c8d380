package golfscript

import "sort"

// Block evaluation re-tokenizes the block's source against the live stack.

func (in *Interp) runBlock(b *Block) error {
	return in.run(b.Source())
}

// runItem evaluates a block; any other item is pushed as is.
func (in *Interp) runItem(a Item) error {
	if b, ok := a.(*Block); ok {
		return in.runBlock(b)
	}
	in.stack.Push(a)
	return nil
}

// test runs b and pops its result. An empty stack counts as false.
func (in *Interp) test(b *Block) (bool, error) {
	if err := in.runBlock(b); err != nil {
		return false, err
	}
	r, ok := in.stack.Pop()
	return ok && r.Truthy(), nil
}

// each pushes every item and runs b after each push.
func (in *Interp) each(b *Block, items []Item) error {
	for _, a := range items {
		in.stack.Push(a)
		if err := in.runBlock(b); err != nil {
			return err
		}
	}
	return nil
}

// mapItems runs each inside a fresh frame and collects what was left there.
func (in *Interp) mapItems(b *Block, items []Item) (*Array, error) {
	in.stack.PushFrame()
	err := in.each(b, items)
	f := in.stack.PopFrame()
	if err != nil {
		return nil, err
	}
	return NewArray(f.Items()), nil
}

// fold pushes the first item raw, then each following item with b run after
// it.
func (in *Interp) fold(b *Block, items []Item) error {
	if len(items) == 0 {
		return nil
	}
	in.stack.Push(items[0])
	return in.each(b, items[1:])
}

// filter keeps the items for which b leaves a truthy result.
func (in *Interp) filter(b *Block, items []Item) ([]Item, error) {
	res := []Item{}
	for _, a := range items {
		in.stack.Push(a)
		ok, err := in.test(b)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, a)
		}
	}
	return res, nil
}

// findFirst returns the first item for which b is truthy.
func (in *Interp) findFirst(b *Block, items []Item) (Item, bool, error) {
	for _, a := range items {
		in.stack.Push(a)
		ok, err := in.test(b)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return a, true, nil
		}
	}
	return nil, false, nil
}

// sortBy orders items by the key b computes for each of them.
func (in *Interp) sortBy(b *Block, items []Item) ([]Item, error) {
	keys := make([]Item, len(items))
	for i, a := range items {
		in.stack.Push(a)
		if err := in.runBlock(b); err != nil {
			return nil, err
		}
		k, ok := in.stack.Pop()
		if !ok {
			k = a
		}
		keys[i] = k
	}
	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return compare(keys[idx[i]], keys[idx[j]]) < 0
	})
	res := make([]Item, len(items))
	for i, k := range idx {
		res[i] = items[k]
	}
	return res, nil
}

// unfold: while cond holds for a copy of the top, collect the top and run
// body. The final top is dropped.
func (in *Interp) unfold(cond, body *Block) (*Array, error) {
	res := []Item{}
	for {
		top, ok := in.stack.Peek(0)
		if !ok {
			break
		}
		in.stack.Push(top)
		ok, err := in.test(cond)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if top, ok = in.stack.Peek(0); !ok {
			break
		}
		res = append(res, top)
		if err := in.runBlock(body); err != nil {
			return nil, err
		}
	}
	in.stack.Pop()
	return NewArray(res), nil
}

// Loops//
func (in *Interp) doLoop(body *Block) error {
	for {
		ok, err := in.test(body)
		if err != nil || !ok {
			return err
		}
	}
}

// whileLoop runs body while cond's result equals want. A condition that
// leaves nothing on the stack ends the loop.
func (in *Interp) whileLoop(cond, body *Block, want bool) error {
	for {
		if err := in.runBlock(cond); err != nil {
			return err
		}
		r, ok := in.stack.Pop()
		if !ok || r.Truthy() != want {
			return nil
		}
		if err := in.runBlock(body); err != nil {
			return err
		}
	}
}
