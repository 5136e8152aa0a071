package algo

import (
	"sort"
)

// IWeight weight interface
type IWeight interface {
	Weight() float64
}

// Source yields uniform values in [0, 1)
type Source interface {
	Value() float64
}

type _SortByWeightBox []_WeightBox

func (a _SortByWeightBox) Len() int           { return len(a) }
func (a _SortByWeightBox) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a _SortByWeightBox) Less(i, j int) bool { return a[i].weight < a[j].weight }

type _WeightBox struct {
	original IWeight
	weight   float64
}

// RandomWeightOnce picks one item with probability proportional to its
// weight. Returns nil when items is empty or every weight is zero.
func RandomWeightOnce(src Source, items []IWeight) IWeight {
	res := _RandomWeight(src, items, 1)
	if len(res) < 1 {
		return nil
	}
	return res[0]
}

// RandomWeight picks total times with replacement
func RandomWeight(src Source, items []IWeight, total int) []IWeight {
	return _RandomWeight(src, items, total)
}

func _RandomWeight(src Source, items []IWeight, total int) []IWeight {
	boxes := make(_SortByWeightBox, 0, len(items))
	curWeight := 0.0
	for _, item := range items {
		if item.Weight() <= 0 {
			continue
		}
		curWeight += item.Weight()
		boxes = append(boxes, _WeightBox{
			original: item,
			weight:   curWeight,
		})
	}
	if curWeight <= 0 {
		return nil
	}

	sort.Sort(boxes)

	result := make([]IWeight, 0, total)
	for i := 0; i < total; i++ {
		r := src.Value() * curWeight
		for _, item := range boxes {
			if r < item.weight {
				result = append(result, item.original)
				break
			}
		}
	}

	return result
}
