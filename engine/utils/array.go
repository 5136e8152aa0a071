package utils

// WashShuffleArray shuffles items in place with r and returns it
func WashShuffleArray(r *Rand, items []int) []int {
	if len(items) < 1 {
		return items
	}
	for i := 0; i < len(items); i++ {
		idx := r.IntRange(i, len(items)-1)
		items[i], items[idx] = items[idx], items[i]
	}
	return items
}

// Lanes returns the symmetric lane indices -spread..spread
func Lanes(spread int) []int {
	if spread < 0 {
		spread = 0
	}
	lanes := make([]int, 0, 2*spread+1)
	for i := -spread; i <= spread; i++ {
		lanes = append(lanes, i)
	}
	return lanes
}
