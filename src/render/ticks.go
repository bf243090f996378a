package render

// maxYearLabels caps how many year labels either chart draws before
// thinning kicks in.
const maxYearLabels = 16

var niceYearSteps = []int{1, 2, 5, 10, 20, 25, 50, 100}

// yearTickStep picks a label step for n year slots so at most maxLabels
// labels are drawn, snapped to a calendar-friendly interval.
func yearTickStep(n, maxLabels int) int {
	if maxLabels <= 0 || n <= maxLabels {
		return 1
	}
	raw := (n + maxLabels - 1) / maxLabels
	for _, s := range niceYearSteps {
		if s >= raw {
			return s
		}
	}
	return niceYearSteps[len(niceYearSteps)-1]
}
