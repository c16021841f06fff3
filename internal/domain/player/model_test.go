package player

import (
	"sort"
	"testing"
)

func TestPlayerValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    Player
		wantErr bool
	}{
		{name: "valid without number", item: Player{ID: "p1", Name: "Daan"}},
		{name: "valid with number", item: Player{ID: "p1", Name: "Daan", Number: IntPtr(7)}},
		{name: "blank name", item: Player{ID: "p1", Name: "   "}, wantErr: true},
		{name: "missing id", item: Player{Name: "Daan"}, wantErr: true},
		{name: "number out of range", item: Player{ID: "p1", Name: "Daan", Number: IntPtr(100)}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.item.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestLess_ActiveFirstThenName(t *testing.T) {
	items := []Player{
		{ID: "1", Name: "Zoe", Active: true},
		{ID: "2", Name: "Anna", Active: false},
		{ID: "3", Name: "bram", Active: true},
	}
	sort.SliceStable(items, func(i, j int) bool { return Less(items[i], items[j]) })

	got := []string{items[0].Name, items[1].Name, items[2].Name}
	want := []string{"bram", "Zoe", "Anna"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order: %v", got)
		}
	}
}
