// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package store

import (
	"iter"
	"strings"
)

// AnyTerminator makes FindByPrefix accept any byte (or none) after the prefix.
const AnyTerminator = -1

// Node is a single entry in a List.
type Node struct {
	Num  int    // Sequence number, used by history.
	Str  string // The entry text, e.g. `NAME=value`.
	next *Node
}

// Next returns the following node, or nil at the end of the list.
func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}

	return n.next
}

// List is a singly-linked, ordered list of string entries.
// The zero value is an empty list ready to use.
type List struct {
	head *Node
}

// Head returns the first node, or nil if the list is empty.
func (l *List) Head() *Node {
	return l.head
}

// Prepend inserts a new node holding text at the front of the list.
func (l *List) Prepend(text string, num int) *Node {
	n := &Node{Num: num, Str: strings.Clone(text), next: l.head}
	l.head = n

	return n
}

// Append inserts a new node holding text at the end of the list.
func (l *List) Append(text string, num int) *Node {
	n := &Node{Num: num, Str: strings.Clone(text)}

	if l.head == nil {
		l.head = n
		return n
	}

	tail := l.head
	for tail.next != nil {
		tail = tail.next
	}

	tail.next = n

	return n
}

// FindByPrefix returns the first node whose string starts with prefix.
// Unless term is AnyTerminator, the byte directly after the prefix must equal term.
func (l *List) FindByPrefix(prefix string, term int) *Node {
	for n := l.head; n != nil; n = n.next {
		rest, ok := strings.CutPrefix(n.Str, prefix)
		if !ok {
			continue
		}

		if term == AnyTerminator || (len(rest) > 0 && int(rest[0]) == term) {
			return n
		}
	}

	return nil
}

// IndexOf returns the 0-based position of node in the list, or -1.
func (l *List) IndexOf(node *Node) int {
	if node == nil {
		return -1
	}

	i := 0
	for n := l.head; n != nil; n = n.next {
		if n == node {
			return i
		}
		i++
	}

	return -1
}

// DeleteAt removes the node at the given 0-based index.
// It reports whether a node existed at that index.
func (l *List) DeleteAt(index int) bool {
	if l.head == nil || index < 0 {
		return false
	}

	if index == 0 {
		l.head = l.head.next
		return true
	}

	prev := l.head
	for i := 1; prev.next != nil; i++ {
		if i == index {
			prev.next = prev.next.next
			return true
		}
		prev = prev.next
	}

	return false
}

// Clear removes every node.
func (l *List) Clear() {
	// Nodes may still be referenced by callers; detach them from each other.
	for n := l.head; n != nil; {
		next := n.next
		n.next = nil
		n = next
	}

	l.head = nil
}

// Len walks the list and returns the number of nodes.
func (l *List) Len() int {
	c := 0
	for n := l.head; n != nil; n = n.next {
		c++
	}

	return c
}

// Strings returns a newly allocated copy of every entry string, in order.
// It returns nil for an empty list.
func (l *List) Strings() []string {
	size := l.Len()
	if size == 0 {
		return nil
	}

	out := make([]string, 0, size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, strings.Clone(n.Str))
	}

	return out
}

// Renumber sets every node's Num to its position and returns the node count.
func (l *List) Renumber() int {
	i := 0
	for n := l.head; n != nil; n = n.next {
		n.Num = i
		i++
	}

	return i
}

// All iterates over the list, yielding each position and node.
func (l *List) All() iter.Seq2[int, *Node] {
	return func(yield func(int, *Node) bool) {
		i := 0
		for n := l.head; n != nil; n = n.next {
			if !yield(i, n) {
				return
			}
			i++
		}
	}
}
