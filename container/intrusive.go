// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package container

import "iter"

// Node carries the links of an intrusive list element. The element type
// embeds Node parameterized with its own pointer type:
//
//	type Task struct {
//	    container.Node[*Task]
//	    deadline int64
//	}
//
//	list := container.NewList[*Task]()
//	list.PushBack(&Task{deadline: 42})
//
// A node belongs to at most one list at a time; inserting a linked node
// corrupts both lists and is not checked. A list must not outlive its
// elements.
type Node[T any] struct {
	next, prev *Node[T]
	elem       T
}

func (n *Node[T]) listNode() *Node[T] { return n }

// Element constrains intrusive list element types: any pointer type that
// embeds Node of itself.
type Element[T any] interface {
	listNode() *Node[T]
}

// List is an intrusive doubly-linked list closed into a cycle through a
// sentinel node. It owns no element memory; element lifetime is the
// caller's concern. Splice of any range is O(1); Len is O(n).
//
// List is not safe for concurrent use.
type List[T Element[T]] struct {
	term Node[T]
}

// NewList creates an empty list.
func NewList[T Element[T]]() *List[T] {
	l := &List[T]{}
	l.Init()
	return l
}

// Init closes the sentinel cycle. It must be called on a List embedded by
// value before first use; NewList calls it. Init on a non-empty list leaks
// the elements' links.
func (l *List[T]) Init() {
	l.term.next = &l.term
	l.term.prev = &l.term
}

func (l *List[T]) lazyInit() {
	if l.term.next == nil {
		l.Init()
	}
}

// Empty reports whether the list holds no elements. O(1).
func (l *List[T]) Empty() bool {
	return l.term.next == nil || l.term.next == &l.term
}

// Len counts the elements by walking the cycle. O(n).
func (l *List[T]) Len() int {
	if l.term.next == nil {
		return 0
	}
	n := 0
	for node := l.term.next; node != &l.term; node = node.next {
		n++
	}
	return n
}

// Begin returns an iterator at the first element.
func (l *List[T]) Begin() ListIterator[T] {
	l.lazyInit()
	return ListIterator[T]{node: l.term.next}
}

// End returns the past-the-end iterator (the sentinel).
func (l *List[T]) End() ListIterator[T] {
	l.lazyInit()
	return ListIterator[T]{node: &l.term}
}

// Front returns the first element. The list must not be empty.
func (l *List[T]) Front() T {
	if l.Empty() {
		panic("container: front of empty list")
	}
	return l.term.next.elem
}

// Back returns the last element. The list must not be empty.
func (l *List[T]) Back() T {
	if l.Empty() {
		panic("container: back of empty list")
	}
	return l.term.prev.elem
}

// Values returns a value sequence over the elements.
func (l *List[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		if l.term.next == nil {
			return
		}
		for node := l.term.next; node != &l.term; node = node.next {
			if !yield(node.elem) {
				return
			}
		}
	}
}

// PushBack links data at the tail. data must not be in any list.
func (l *List[T]) PushBack(data T) {
	l.Insert(l.End(), data)
}

// PushFront links data at the head. data must not be in any list.
func (l *List[T]) PushFront(data T) {
	l.Insert(l.Begin(), data)
}

// PopBack unlinks the last element. The list must not be empty.
func (l *List[T]) PopBack() {
	if l.Empty() {
		panic("container: pop from empty list")
	}
	l.Erase(l.End().Prev())
}

// PopFront unlinks the first element. The list must not be empty.
func (l *List[T]) PopFront() {
	if l.Empty() {
		panic("container: pop from empty list")
	}
	l.Erase(l.Begin())
}

// Insert links data before pos and returns an iterator at data.
// data must not be in any list.
func (l *List[T]) Insert(pos ListIterator[T], data T) ListIterator[T] {
	l.lazyInit()
	if pos.node == nil {
		panic("container: zero list iterator")
	}
	n := data.listNode()
	n.elem = data
	n.next = pos.node
	n.prev = pos.node.prev
	pos.node.prev = n
	n.prev.next = n
	return ListIterator[T]{node: n}
}

// Erase unlinks the element at pos and returns an iterator to the element
// that followed it. The unlinked node keeps stale links; it may be inserted
// into a list again.
func (l *List[T]) Erase(pos ListIterator[T]) ListIterator[T] {
	if l.Empty() {
		panic("container: erase from empty list")
	}
	if pos.node == nil || pos.node == &l.term {
		panic("container: erase of end iterator")
	}
	next := pos.node.next
	pos.node.prev.next = pos.node.next
	pos.node.next.prev = pos.node.prev
	return ListIterator[T]{node: next}
}

// Splice moves all elements of x before pos. x must be a different list;
// x is empty afterwards.
func (l *List[T]) Splice(pos ListIterator[T], x *List[T]) {
	if l == x {
		panic("container: splice of a list into itself")
	}
	if x.Empty() {
		return
	}
	l.SpliceRange(pos, x, x.Begin(), x.End())
}

// SpliceOne moves the single element at i (in x) before pos. The no-op
// cases pos == i and pos == i+1 are refused silently, so intra-list moves
// are safe.
func (l *List[T]) SpliceOne(pos ListIterator[T], x *List[T], i ListIterator[T]) {
	if i.Equal(l.End()) || i.Equal(x.End()) {
		panic("container: splice of end iterator")
	}
	if pos.Equal(i) {
		return
	}
	j := i.Next()
	if pos.Equal(j) {
		return
	}
	l.SpliceRange(pos, x, i, j)
}

// SpliceRange moves [first, last) of x before pos by rewiring exactly six
// links. For intra-list splices pos must not lie inside [first, last).
func (l *List[T]) SpliceRange(pos ListIterator[T], x *List[T], first, last ListIterator[T]) {
	l.lazyInit()
	x.lazyInit()
	if pos.node == nil || first.node == nil || last.node == nil {
		panic("container: zero list iterator")
	}
	if first.Equal(l.End()) || first.Equal(x.End()) {
		panic("container: splice of end iterator")
	}
	if first.Equal(last) {
		return
	}
	if pos.Equal(first) || pos.Equal(last) {
		return
	}
	last.node.prev.next = pos.node
	first.node.prev.next = last.node
	pos.node.prev.next = first.node

	tmp := pos.node.prev
	pos.node.prev = last.node.prev
	last.node.prev = first.node.prev
	first.node.prev = tmp
}

// Swap exchanges the contents of two lists by splicing through a temporary.
func (l *List[T]) Swap(other *List[T]) {
	if l == other {
		return
	}
	var tmp List[T]
	tmp.Splice(tmp.End(), other)
	other.Splice(other.End(), l)
	l.Splice(l.End(), &tmp)
}

// ListIterator is a bidirectional position within a List. Dereferencing
// yields the element whose node the position refers to. A position is
// invalidated only by erasing the element it refers to.
type ListIterator[T any] struct {
	node *Node[T]
}

// Next returns the position one element forward.
func (it ListIterator[T]) Next() ListIterator[T] {
	if it.node == nil {
		panic("container: zero list iterator")
	}
	return ListIterator[T]{node: it.node.next}
}

// Prev returns the position one element backward.
func (it ListIterator[T]) Prev() ListIterator[T] {
	if it.node == nil {
		panic("container: zero list iterator")
	}
	return ListIterator[T]{node: it.node.prev}
}

// Value returns the element at the position. The position must not be the
// end iterator.
func (it ListIterator[T]) Value() T {
	if it.node == nil {
		panic("container: zero list iterator")
	}
	return it.node.elem
}

// Equal reports whether both positions refer to the same node.
func (it ListIterator[T]) Equal(x ListIterator[T]) bool {
	return it.node == x.node
}
