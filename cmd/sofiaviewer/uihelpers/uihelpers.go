package uihelpers

// ComputeChartDimensions applies width/height clamp rules used for charts.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	return w, ChartHeightFor(w)
}

// ChartHeightFor derives the count chart height from its width.
// Rules: 45% of width, clamped between 280 and 560.
func ChartHeightFor(w int) int {
	h := w * 45 / 100
	if h < 280 {
		h = 280
	}
	if h > 560 {
		h = 560
	}
	return h
}

// ComputeGridHeight derives the stock grid height from the number of stock
// rows so each raster row stays readable.
// Rules: 120px of chrome plus 18px per stock, clamped between 280 and 900.
func ComputeGridHeight(rows int) int {
	h := 120 + rows*18
	if h < 280 {
		h = 280
	}
	if h > 900 {
		h = 900
	}
	return h
}

// ComputeTableColumnWidths returns widths for the summary table given a
// window width and the column count (Year, one per category, Total).
// First and last columns are fixed; category columns share the remainder
// clamped between 110 and 220.
func ComputeTableColumnWidths(winW float32, columns int) []float32 {
	if columns < 3 {
		columns = 3
	}
	const edge = 80
	widths := make([]float32, columns)
	widths[0] = edge
	widths[columns-1] = edge
	per := (winW - 2*edge) / float32(columns-2)
	if per < 110 {
		per = 110
	}
	if per > 220 {
		per = 220
	}
	for i := 1; i < columns-1; i++ {
		widths[i] = per
	}
	return widths
}
