package catplot

import "sort"

// Years returns the sorted distinct years covered by the Spec, classified
// or not, so axes span every observed year.
func (s *Spec) Years() []int {
	seen := make(map[int]bool)
	var out []int
	for _, p := range s.Points {
		if !seen[p.Year] {
			seen[p.Year] = true
			out = append(out, p.Year)
		}
	}
	sort.Ints(out)
	return out
}

// StockNames returns the sorted distinct stock names.
func (s *Spec) StockNames() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range s.Points {
		if !seen[p.Stock] {
			seen[p.Stock] = true
			out = append(out, p.Stock)
		}
	}
	sort.Strings(out)
	return out
}

// YearCount tallies the classified observations of one year; Counts is
// indexed by category code minus one.
type YearCount struct {
	Year   int
	Counts []int
}

// Total returns the classified observations of the year.
func (yc YearCount) Total() int {
	t := 0
	for _, c := range yc.Counts {
		t += c
	}
	return t
}

// CountsByYear tallies classified points per year in ascending year order.
// Unclassified points are not counted, but their years still appear.
func (s *Spec) CountsByYear() []YearCount {
	years := s.Years()
	idx := make(map[int]int, len(years))
	out := make([]YearCount, len(years))
	for i, y := range years {
		idx[y] = i
		out[i] = YearCount{Year: y, Counts: make([]int, s.Classes)}
	}
	for _, p := range s.Points {
		if p.Cat < 1 || p.Cat > s.Classes {
			continue
		}
		out[idx[p.Year]].Counts[p.Cat-1]++
	}
	return out
}

// Grid returns stock -> year -> category code for every classified point.
// A duplicate stock/year keeps the later point, matching file order.
func (s *Spec) Grid() map[string]map[int]int {
	g := make(map[string]map[int]int)
	for _, p := range s.Points {
		if p.Cat < 1 {
			continue
		}
		m, ok := g[p.Stock]
		if !ok {
			m = make(map[int]int)
			g[p.Stock] = m
		}
		m[p.Year] = p.Cat
	}
	return g
}

// CategoryAt returns the category code at stock/year, 0 when absent or
// unclassified.
func (s *Spec) CategoryAt(stock string, year int) int {
	for i := len(s.Points) - 1; i >= 0; i-- {
		p := s.Points[i]
		if p.Stock == stock && p.Year == year {
			return p.Cat
		}
	}
	return 0
}
