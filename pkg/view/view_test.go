package view

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

type row struct {
	name  string
	group string
	n     int
}

var rows = []row{
	{"a", "x", 1},
	{"b", "y", 2},
	{"c", "x", 3},
	{"d", "x", 4},
}

func names(rs []row) []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.name)
	}
	return out
}

func TestFilterConjunctionPreservesOrder(t *testing.T) {
	got := Filter(rows,
		When(true, func(r row) bool { return r.group == "x" }),
		When(true, func(r row) bool { return r.n > 1 }),
	)
	if want := []string{"c", "d"}; !reflect.DeepEqual(names(got), want) {
		t.Fatalf("got %v, want %v", names(got), want)
	}
}

func TestFilterInactivePredicates(t *testing.T) {
	got := Filter(rows,
		When(false, func(r row) bool { return false }),
		Predicate[row]{Active: true},
	)
	if !reflect.DeepEqual(got, rows) {
		t.Fatalf("inactive predicates filtered items: %v", names(got))
	}
}

func TestFilterEmpty(t *testing.T) {
	if got := Filter[row](nil); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestWindow(t *testing.T) {
	if got := Window(rows, 2); len(got) != 2 {
		t.Fatalf("expected 2, got %d", len(got))
	}
	if got := Window(rows, 10); len(got) != 4 {
		t.Fatalf("expected 4, got %d", len(got))
	}
	if got := Window(rows, -1); len(got) != 4 {
		t.Fatalf("expected 4, got %d", len(got))
	}
}

func TestExtract(t *testing.T) {
	s := Extract(rows, 3, func(r row) string { return r.name }, func(r row) float64 { return float64(r.n) })
	want := Series{Labels: []string{"a", "b", "c"}, Values: []float64{1, 2, 3}}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("got %+v, want %+v", s, want)
	}
	if s.Len() != len(s.Values) {
		t.Fatalf("labels and values differ in length")
	}
}

func TestSumAndCount(t *testing.T) {
	total := Sum(rows, func(r row) decimal.Decimal { return decimal.NewFromInt(int64(r.n)) })
	if !total.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected total %s", total)
	}
	if n := Count(rows, func(r row) bool { return r.group == "x" }); n != 3 {
		t.Fatalf("unexpected count %d", n)
	}
}
