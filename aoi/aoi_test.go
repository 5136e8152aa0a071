package aoi

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

type _TestCallback struct {
	item   *Item
	id     int
	enters int
	leaves int
}

func (tc *_TestCallback) OnEnterAOI(self *Item, other *Item) {
	tc.enters++
}

func (tc *_TestCallback) OnLeaveAOI(self *Item, other *Item) {
	tc.leaves++
}

func (tc *_TestCallback) String() string {
	return fmt.Sprintf("TestCallback <%d>", tc.id)
}

func newTestItem(id int, radius float64) *_TestCallback {
	tc := &_TestCallback{id: id}
	tc.item = NewItem(fmt.Sprint(id), radius, 1, tc, tc)
	return tc
}

func at(x, z float64) mgl64.Vec3 {
	return mgl64.Vec3{x, 0, z}
}

func TestManagerNeighbors(t *testing.T) {
	mgr := NewManager(2)
	a, b, c := newTestItem(1, 0.5), newTestItem(2, 0.5), newTestItem(3, 0.5)

	mgr.Enter(a.item, at(0, 0))
	mgr.Enter(b.item, at(1, 1))
	mgr.Enter(c.item, at(1, 5))

	assert.Equal(t, 3, mgr.Len())
	assert.Equal(t, 1, a.item.NeighborCount())
	assert.Equal(t, 1, b.item.NeighborCount())
	assert.Equal(t, 0, c.item.NeighborCount())
	assert.Equal(t, 1, a.enters)

	mgr.Moved(c.item, at(1, 2.5))
	assert.Equal(t, 2, b.item.NeighborCount())
	assert.Equal(t, 1, c.item.NeighborCount())

	mgr.Moved(a.item, at(-5, 0))
	assert.Equal(t, 0, a.item.NeighborCount())
	assert.Equal(t, 1, a.leaves)
	assert.Equal(t, 1, b.leaves)

	mgr.Leave(b.item)
	assert.Equal(t, 0, c.item.NeighborCount())
	assert.Nil(t, mgr.Get("2"))
	assert.Equal(t, 2, mgr.Len())
}

func TestManagerQuery(t *testing.T) {
	mgr := NewManager(3)
	small := NewItem("small", 0.5, 1, nil, nil)
	big := NewItem("big", 2, 1, nil, nil)
	other := NewItem("other", 0.5, 2, nil, nil)
	mgr.Enter(small, at(1, 0))
	mgr.Enter(big, at(4.5, 0))
	mgr.Enter(other, at(0.5, 0))

	var got []string
	collect := func(it *Item) bool {
		got = append(got, it.ID)
		return true
	}

	mgr.Query(at(0, 0), 1, 1, collect)
	assert.Equal(t, []string{"small"}, got)

	got = nil
	mgr.Query(at(2, 0), 1, 1|2, collect)
	sort.Strings(got)
	assert.Equal(t, []string{"big", "other", "small"}, got)

	got = nil
	mgr.Query(at(2, 0), 1, 1|2, func(it *Item) bool {
		got = append(got, it.ID)
		return false
	})
	assert.Len(t, got, 1)
}

// neighbors must match a brute force square check after random churn
func TestManagerMatchesBruteForce(t *testing.T) {
	const view = 10
	r := rand.New(rand.NewSource(7))
	mgr := NewManager(view)

	var items []*_TestCallback
	for i := 0; i < 200; i++ {
		tc := newTestItem(i, 0.5)
		items = append(items, tc)
		mgr.Enter(tc.item, at(r.Float64()*100, r.Float64()*100))
	}
	for round := 0; round < 5; round++ {
		for _, tc := range items {
			p := tc.item.Position()
			mgr.Moved(tc.item, at(p[0]+r.Float64()*8-4, p[2]+r.Float64()*8-4))
		}
	}

	for _, tc := range items {
		want := 0
		for _, o := range items {
			if o == tc {
				continue
			}
			d := o.item.Position().Sub(tc.item.Position())
			if math.Abs(d[0]) <= view && math.Abs(d[2]) <= view {
				want++
			}
		}
		assert.Equal(t, want, tc.item.NeighborCount(), tc.String())
	}
}

func BenchmarkManagerMoved(b *testing.B) {
	mgr := NewManager(20)
	var items []*Item
	for i := 0; i < 1000; i++ {
		it := NewItem(fmt.Sprint(i), 0.5, 1, nil, nil)
		items = append(items, it)
		mgr.Enter(it, at(rand.Float64()*500, rand.Float64()*500))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := items[i%len(items)]
		p := it.Position()
		mgr.Moved(it, at(p[0]+rand.Float64()*2-1, p[2]+rand.Float64()*2-1))
	}
}
