package aoi

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Callback hears about items entering and leaving an item's view square
type Callback interface {
	// OnEnterAOI other enter my view
	OnEnterAOI(self *Item, other *Item)
	// OnLeaveAOI other leave my view
	OnLeaveAOI(self *Item, other *Item)
}

// Item is a round body tracked by a Manager
type Item struct {
	ID     string
	Radius float64
	Layer  uint32
	Data   interface{}

	pos      mgl64.Vec3
	callback Callback
	imp      *sweepItem
}

// NewItem with body radius, layer bits, custom data and an optional callback
func NewItem(id string, radius float64, layer uint32, data interface{}, callback Callback) *Item {
	return &Item{
		ID:       id,
		Radius:   radius,
		Layer:    layer,
		Data:     data,
		callback: callback,
	}
}

// Position last reported to the manager
func (it *Item) Position() mgl64.Vec3 {
	return it.pos
}

// Neighbors currently inside the view square
func (it *Item) Neighbors() []*Item {
	if it.imp == nil {
		return nil
	}
	out := make([]*Item, 0, len(it.imp.neighbors))
	for n := range it.imp.neighbors {
		out = append(out, n.item)
	}
	return out
}

// NeighborCount without allocating
func (it *Item) NeighborCount() int {
	if it.imp == nil {
		return 0
	}
	return len(it.imp.neighbors)
}

func (it *Item) String() string {
	return fmt.Sprintf("<aoi.Item> %s %v", it.ID, it.pos)
}

// IManager interface
type IManager interface {
	Enter(item *Item, pos mgl64.Vec3)
	Leave(item *Item)
	Moved(item *Item, pos mgl64.Vec3)
}
