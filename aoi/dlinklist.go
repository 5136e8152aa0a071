package aoi

import (
	"fmt"
	"strings"
)

// NodeData type bind to Node
type NodeData interface{}

// Less returns true when left sorts before right
type Less func(left NodeData, right NodeData) bool

// DSortLinkList is a sorted doubly linked list. It is not goroutine safe.
type DSortLinkList struct {
	head  *Node
	tail  *Node
	count int32

	less Less
}

// Node in DSortLinkList
type Node struct {
	Prev *Node
	Next *Node
	Data NodeData
}

// NewDSortLinkList sorted by less
func NewDSortLinkList(less Less) *DSortLinkList {
	return &DSortLinkList{
		less: less,
	}
}

// Head first node, nil when empty
func (l *DSortLinkList) Head() *Node {
	return l.head
}

// Insert node at its sorted position, walking from the head
func (l *DSortLinkList) Insert(node *Node) {
	l.count++

	if l.head == nil {
		l.head = node
		l.tail = node
		return
	}

	cur := l.head
	for cur != nil && l.less(cur.Data, node.Data) {
		cur = cur.Next
	}
	if cur == nil {
		l.tail.Next = node
		node.Prev = l.tail
		l.tail = node
		return
	}

	prev := cur.Prev
	node.Next = cur
	cur.Prev = node
	if prev == nil {
		l.head = node
	} else {
		prev.Next = node
		node.Prev = prev
	}
}

// Remove node from the list
func (l *DSortLinkList) Remove(node *Node) {
	if l.count <= 0 {
		return
	}
	l.count--
	prev := node.Prev
	next := node.Next

	if prev == nil {
		l.head = next
	} else {
		prev.Next = next
	}
	if next == nil {
		l.tail = prev
	} else {
		next.Prev = prev
	}

	node.Prev = nil
	node.Next = nil
}

// Modify replaces node's data and moves it to its new position
func (l *DSortLinkList) Modify(node *Node, newData NodeData) {
	backward := l.less(newData, node.Data)
	node.Data = newData
	l.ReSort(node, backward)
}

// ReSort moves node after its sort key changed. backward searches toward
// the head, otherwise toward the tail.
func (l *DSortLinkList) ReSort(node *Node, backward bool) {
	if backward {
		find := node.Prev
		if find == nil || l.less(find.Data, node.Data) {
			return
		}
		for find != nil && !l.less(find.Data, node.Data) {
			find = find.Prev
		}

		node.Prev.Next = node.Next
		if node.Next != nil {
			node.Next.Prev = node.Prev
		} else {
			l.tail = node.Prev
		}

		if find != nil {
			node.Prev = find
			node.Next = find.Next
			find.Next.Prev = node
			find.Next = node
		} else {
			l.head.Prev = node
			node.Next = l.head
			node.Prev = nil
			l.head = node
		}
		return
	}

	find := node.Next
	if find == nil || !l.less(find.Data, node.Data) {
		return
	}
	for find != nil && l.less(find.Data, node.Data) {
		find = find.Next
	}

	if node.Prev != nil {
		node.Prev.Next = node.Next
	} else {
		l.head = node.Next
	}
	node.Next.Prev = node.Prev

	if find != nil {
		node.Prev = find.Prev
		node.Next = find
		find.Prev.Next = node
		find.Prev = node
	} else {
		l.tail.Next = node
		node.Prev = l.tail
		node.Next = nil
		l.tail = node
	}
}

// IsEmpty DSortLinkList is empty
func (l *DSortLinkList) IsEmpty() bool {
	return l.head == nil
}

// Count of nodes
func (l *DSortLinkList) Count() int32 {
	return l.count
}

// nodeAt index, tests only
func (l *DSortLinkList) nodeAt(index int) *Node {
	node := l.head
	for i := 0; i < index; i++ {
		node = node.Next
	}
	return node
}

func (l *DSortLinkList) String() string {
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("DSortLinkList %p:", l))
	for node := l.head; node != nil; node = node.Next {
		sb.WriteString(fmt.Sprintf("[%v]", node.Data))
		if node != l.tail {
			sb.WriteString(" -> ")
		}
	}
	return sb.String()
}
