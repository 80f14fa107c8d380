package golfscript

import "strings"

// Frame is one open array literal or isolated iteration scope. Items are
// kept bottom to top.
type Frame struct {
	items []Item
}

func (f *Frame) Push(a Item) {
	f.items = append(f.items, a)
}

// Pop removes the item ind places below the frame's top.
func (f *Frame) Pop(ind int) Item {
	at := len(f.items) - 1 - ind
	a := f.items[at]
	f.items = append(f.items[:at], f.items[at+1:]...)
	return a
}

func (f *Frame) Peek(ind int) Item {
	return f.items[len(f.items)-1-ind]
}

func (f *Frame) Size() int {
	return len(f.items)
}

// Items returns the frame contents bottom to top.
func (f *Frame) Items() []Item {
	return f.items
}

// The stack: a list of frames, innermost last. There is always at least one.
type Stack struct {
	frames []*Frame
}

func NewStack() *Stack {
	x := &Stack{}
	x.PushFrame()
	return x
}

func (x *Stack) PushFrame() {
	x.frames = append(x.frames, &Frame{})
}

// PopFrame detaches the innermost frame. Popping the last frame leaves a
// fresh empty one in its place.
func (x *Stack) PopFrame() *Frame {
	last := len(x.frames) - 1
	f := x.frames[last]
	x.frames = x.frames[:last]
	if len(x.frames) == 0 {
		x.PushFrame()
	}
	return f
}

// CollectFrame pops the innermost frame and pushes its items as an array.
func (x *Stack) CollectFrame() *Array {
	f := x.PopFrame()
	a := NewArray(f.items)
	x.Push(a)
	return a
}

func (x *Stack) Frames() int {
	return len(x.frames)
}

func (x *Stack) Push(a Item) {
	x.frames[len(x.frames)-1].Push(a)
}

func (x *Stack) Pusha(as ...Item) {
	for _, a := range as {
		x.Push(a)
	}
}

// find maps a global top-down index to a frame and a frame-local index.
func (x *Stack) find(ind int) (*Frame, int) {
	if ind < 0 {
		return nil, 0
	}
	for i := len(x.frames) - 1; i >= 0; i-- {
		f := x.frames[i]
		if ind < f.Size() {
			return f, ind
		}
		ind -= f.Size()
	}
	return nil, 0
}

// Peek returns the item ind places below the top, crossing frame boundaries.
func (x *Stack) Peek(ind int) (Item, bool) {
	f, at := x.find(ind)
	if f == nil {
		return nil, false
	}
	return f.Peek(at), true
}

// PopAt removes the item ind places below the top.
func (x *Stack) PopAt(ind int) (Item, bool) {
	f, at := x.find(ind)
	if f == nil {
		return nil, false
	}
	return f.Pop(at), true
}

func (x *Stack) Pop() (Item, bool) {
	return x.PopAt(0)
}

func (x *Stack) Size() int {
	n := 0
	for _, f := range x.frames {
		n += f.Size()
	}
	return n
}

func (x *Stack) Clear() {
	x.frames = nil
	x.PushFrame()
}

// Contents is the space separated display form of every item, outer frames
// first and bottom to top within a frame.
func (x *Stack) Contents() string {
	var parts []string
	for _, f := range x.frames {
		for _, a := range f.items {
			parts = append(parts, a.Inspect())
		}
	}
	return strings.Join(parts, " ")
}

func (x *Stack) String() string {
	return "[" + x.Contents() + "]"
}

// Native concatenates the native form of every item, the way a finished
// program's output is printed.
func (x *Stack) Native() string {
	var sb strings.Builder
	for _, f := range x.frames {
		for _, a := range f.items {
			sb.WriteString(a.Native())
		}
	}
	return sb.String()
}
