package maputil

import (
	"slices"
	"testing"
)

func TestKeys(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}

	keys := Keys(m)
	if len(keys) != 3 {
		t.Fatalf("Keys should return 3 keys, got %d", len(keys))
	}
	for _, want := range []string{"a", "b", "c"} {
		if !slices.Contains(keys, want) {
			t.Errorf("Keys should contain %q, got %v", want, keys)
		}
	}
}

func TestKeys_Empty(t *testing.T) {
	keys := Keys(map[string]int{})
	if len(keys) != 0 {
		t.Errorf("Keys of empty map should be empty, got %v", keys)
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[string]int{"b": 2, "c": 3, "a": 1}

	keys := SortedKeys(m)
	want := []string{"a", "b", "c"}
	if !slices.Equal(keys, want) {
		t.Errorf("SortedKeys should return %v, got %v", want, keys)
	}
}

func TestSortedKeys_Int(t *testing.T) {
	m := map[int]string{3: "c", 1: "a", 2: "b"}

	keys := SortedKeys(m)
	want := []int{1, 2, 3}
	if !slices.Equal(keys, want) {
		t.Errorf("SortedKeys should return %v, got %v", want, keys)
	}
}
