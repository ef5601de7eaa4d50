// Package stats has the small numeric helpers of the miner and the run
// metrics.
package stats

func Srange(size int) []int {
	items := make([]int, 0, size)
	for i := 0; i < size; i++ {
		items = append(items, i)
	}
	return items
}

// Min is the item minimizing f and the minimum. arg is -1 for no items.
func Min(items []int, f func(item int) float64) (arg int, min float64) {
	arg = -1
	for _, i := range items {
		d := f(i)
		if d < min || arg < 0 {
			min = d
			arg = i
		}
	}
	return arg, min
}

// Max is the item maximizing f and the maximum. arg is -1 for no items.
func Max(items []int, f func(item int) float64) (arg int, max float64) {
	arg = -1
	for _, i := range items {
		d := f(i)
		if d > max || arg < 0 {
			max = d
			arg = i
		}
	}
	return arg, max
}
