package task

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/collection"
	"tableflip.dev/daybook/pkg/store"
)

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory(" study ")
	if err != nil || c != Study {
		t.Fatalf("expected Study, got %q %v", c, err)
	}
	if _, err := ParseCategory("Chores"); err == nil {
		t.Fatalf("expected error for unknown category")
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(New("  ", Work)); err == nil {
		t.Fatalf("expected error for empty title")
	}
	if err := Validate(New("ok", "Chores")); err == nil {
		t.Fatalf("expected error for unknown category")
	}
	if err := Validate(New("ok", Health)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, c := range []Category{"work", "HEALTH", " Study"} {
		if err := Validate(New("ok", c)); err == nil {
			t.Fatalf("expected error for non-canonical category %q", c)
		}
	}
}

func TestPatchApply(t *testing.T) {
	title := "Renamed"
	due := calendar.MustParse("2024-01-02")
	done := true
	orig := Task{ID: "1", Title: "Old", Description: "keep", Category: Work}
	got := Patch{Title: &title, DueDate: &due, Completed: &done}.Apply(orig)
	want := Task{ID: "1", Title: "Renamed", Description: "keep", Category: Work, DueDate: due, Completed: true}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	if !(Patch{}).IsEmpty() {
		t.Fatalf("expected empty patch")
	}
}

func TestJSONMatchesStoredLayout(t *testing.T) {
	data := []byte(`[{"id":"1","title":"Complete project proposal","completed":false,"category":"Work","dueDate":"2023-12-15"},
{"id":"2","title":"No date","description":"d","completed":true,"category":"Health","dueDate":""}]`)
	got, err := collection.UnmarshalList[Task](data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got[0].DueDate.String() != "2023-12-15" || got[0].Category != Work {
		t.Fatalf("unexpected first task %+v", got[0])
	}
	if !got[1].DueDate.IsZero() || !got[1].Completed {
		t.Fatalf("unexpected second task %+v", got[1])
	}

	out, err := collection.MarshalList(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	back, err := collection.UnmarshalList[Task](out)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back, got) {
		t.Fatalf("round trip mismatch")
	}

	var raw []map[string]any
	if err := json.Unmarshal(out, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	for _, field := range []string{"id", "title", "category", "dueDate", "completed"} {
		if _, ok := raw[0][field]; !ok {
			t.Fatalf("missing field %q in %s", field, out)
		}
	}
}

func TestStoreAddToggleRemove(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	s := collection.New(mem, Schema(), collection.WithSeed(Samples()))

	added, err := s.Add(ctx, New("Write report", Work))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" || added.Completed {
		t.Fatalf("unexpected new task %+v", added)
	}
	if first := s.List()[0]; first.ID != added.ID {
		t.Fatalf("expected newest task first, got %+v", first)
	}

	toggled, ok, err := s.Update(ctx, "1", Toggle)
	if err != nil || !ok || !toggled.Completed {
		t.Fatalf("toggle: %+v ok=%v err=%v", toggled, ok, err)
	}
	if _, err := s.Remove(ctx, "2"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	fresh := collection.New(mem, Schema())
	if err := fresh.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(fresh.List(), s.List()) {
		t.Fatalf("stored list differs from memory")
	}

	if _, err := s.Add(ctx, New("", Work)); !errors.Is(err, collection.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
