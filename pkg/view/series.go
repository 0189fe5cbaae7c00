package view

// Series is a chart-ready pair of equal length label and value sequences.
type Series struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// Len returns the number of points.
func (s Series) Len() int {
	return len(s.Labels)
}

// Extract builds a Series from the first window items, preserving order.
func Extract[T any](items []T, window int, label func(T) string, value func(T) float64) Series {
	items = Window(items, window)
	s := Series{
		Labels: make([]string, 0, len(items)),
		Values: make([]float64, 0, len(items)),
	}
	for _, item := range items {
		s.Labels = append(s.Labels, label(item))
		s.Values = append(s.Values, value(item))
	}
	return s
}
