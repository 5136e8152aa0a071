package aoi

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// axis of the ground plane a sweep list sorts on
type axis int

const (
	axisX axis = iota
	axisZ
)

func (a axis) coord(it *Item) float64 {
	if a == axisX {
		return it.pos[0]
	}
	return it.pos[2]
}

type sweepItem struct {
	item      *Item
	neighbors map[*sweepItem]struct{}
	nodes     [2]*Node
	markVal   int
}

func (s *sweepItem) prev(a axis) *sweepItem {
	if n := s.nodes[a]; n != nil && n.Prev != nil {
		return n.Prev.Data.(*sweepItem)
	}
	return nil
}

func (s *sweepItem) next(a axis) *sweepItem {
	if n := s.nodes[a]; n != nil && n.Next != nil {
		return n.Next.Data.(*sweepItem)
	}
	return nil
}

// sweepList keeps items sorted along one axis
type sweepList struct {
	axis axis
	view float64
	list *DSortLinkList
}

func newSweepList(a axis, view float64) *sweepList {
	return &sweepList{
		axis: a,
		view: view,
		list: NewDSortLinkList(func(left, right NodeData) bool {
			return a.coord(left.(*sweepItem).item) < a.coord(right.(*sweepItem).item)
		}),
	}
}

func (sl *sweepList) insert(s *sweepItem) {
	node := &Node{Data: s}
	s.nodes[sl.axis] = node
	sl.list.Insert(node)
}

func (sl *sweepList) remove(s *sweepItem) {
	if node := s.nodes[sl.axis]; node != nil {
		sl.list.Remove(node)
		s.nodes[sl.axis] = nil
	}
}

func (sl *sweepList) move(s *sweepItem, old float64) {
	sl.list.ReSort(s.nodes[sl.axis], sl.axis.coord(s.item) < old)
}

// visit calls fn for every item within view of s along the axis
func (sl *sweepList) visit(s *sweepItem, fn func(other *sweepItem)) {
	coord := sl.axis.coord(s.item)
	for p := s.prev(sl.axis); p != nil && sl.axis.coord(p.item) >= coord-sl.view; p = p.prev(sl.axis) {
		fn(p)
	}
	for n := s.next(sl.axis); n != nil && sl.axis.coord(n.item) <= coord+sl.view; n = n.next(sl.axis) {
		fn(n)
	}
}

// Manager tracks items on the XZ plane with two sweep lists. Items closer
// than view on both axes are neighbors of each other.
//
//	It is not goroutine safe.
type Manager struct {
	view      float64
	maxRadius float64
	lists     [2]*sweepList
	items     map[string]*Item
}

// NewManager with the given view half width
func NewManager(view float64) *Manager {
	return &Manager{
		view:  view,
		lists: [2]*sweepList{newSweepList(axisX, view), newSweepList(axisZ, view)},
		items: make(map[string]*Item),
	}
}

// Enter adds item at pos
func (mgr *Manager) Enter(item *Item, pos mgl64.Vec3) {
	if item.imp != nil {
		mgr.Moved(item, pos)
		return
	}
	item.pos = pos
	item.imp = &sweepItem{
		item:      item,
		neighbors: map[*sweepItem]struct{}{},
	}
	mgr.items[item.ID] = item
	mgr.maxRadius = math.Max(mgr.maxRadius, item.Radius)

	for _, l := range mgr.lists {
		l.insert(item.imp)
	}
	mgr.adjust(item.imp)
}

// Leave removes item, every neighbor hears about it
func (mgr *Manager) Leave(item *Item) {
	s := item.imp
	if s == nil {
		return
	}
	for _, l := range mgr.lists {
		l.remove(s)
	}
	mgr.adjust(s)
	delete(mgr.items, item.ID)
	item.imp = nil
}

// Moved item to pos
func (mgr *Manager) Moved(item *Item, pos mgl64.Vec3) {
	s := item.imp
	if s == nil {
		return
	}
	old := item.pos
	item.pos = pos
	if old[0] != pos[0] {
		mgr.lists[axisX].move(s, old[0])
	}
	if old[2] != pos[2] {
		mgr.lists[axisZ].move(s, old[2])
	}
	mgr.adjust(s)
}

// Get item by id
func (mgr *Manager) Get(id string) *Item {
	return mgr.items[id]
}

// Len of tracked items
func (mgr *Manager) Len() int {
	return len(mgr.items)
}

// Query visits items on a layer in mask whose body overlaps the sphere,
// stopping when visit returns false.
func (mgr *Manager) Query(center mgl64.Vec3, radius float64, mask uint32, visit func(*Item) bool) {
	lo := center[0] - radius - mgr.maxRadius
	hi := center[0] + radius + mgr.maxRadius

	for node := mgr.lists[axisX].list.Head(); node != nil; node = node.Next {
		it := node.Data.(*sweepItem).item
		if it.pos[0] < lo {
			continue
		}
		if it.pos[0] > hi {
			return
		}
		if it.Layer&mask == 0 {
			continue
		}
		reach := radius + it.Radius
		if it.pos.Sub(center).LenSqr() > reach*reach {
			continue
		}
		if !visit(it) {
			return
		}
	}
}

// adjust recomputes the neighbors of s. Items marked on both axes are
// neighbors.
func (mgr *Manager) adjust(s *sweepItem) {
	mark := func(o *sweepItem) { o.markVal++ }
	mgr.lists[axisX].visit(s, mark)
	mgr.lists[axisZ].visit(s, mark)

	for n := range s.neighbors {
		if n.markVal == 2 {
			n.markVal = -2
			continue
		}
		delete(s.neighbors, n)
		notifyLeave(s, n)
		if _, ok := n.neighbors[s]; ok {
			delete(n.neighbors, s)
			notifyLeave(n, s)
		}
	}

	mgr.lists[axisX].visit(s, func(o *sweepItem) {
		if o.markVal == 2 {
			if _, ok := s.neighbors[o]; !ok {
				s.neighbors[o] = struct{}{}
				notifyEnter(s, o)
			}
			if _, ok := o.neighbors[s]; !ok {
				o.neighbors[s] = struct{}{}
				notifyEnter(o, s)
			}
		}
		o.markVal = 0
	})
	mgr.lists[axisZ].visit(s, func(o *sweepItem) { o.markVal = 0 })
}

func notifyEnter(self, other *sweepItem) {
	if self.item.callback != nil {
		self.item.callback.OnEnterAOI(self.item, other.item)
	}
}

func notifyLeave(self, other *sweepItem) {
	if self.item.callback != nil {
		self.item.callback.OnLeaveAOI(self.item, other.item)
	}
}
