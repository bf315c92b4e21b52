package srs

import (
	"testing"
	"time"
)

func TestNewItem(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	it := NewItem("serendipity", now)
	if it.Word != "serendipity" {
		t.Fatalf("unexpected word %q", it.Word)
	}
	if it.Level != 0 || it.Reviews != 0 {
		t.Fatalf("expected fresh item at level 0 with no reviews, got %+v", it)
	}
	if !it.Due.Equal(now) {
		t.Fatalf("expected fresh item due immediately, got %v", it.Due)
	}
	if !it.IsDue(now) {
		t.Fatalf("expected fresh item to be due at creation time")
	}
}

func TestInterval(t *testing.T) {
	day := 24 * time.Hour
	cases := []struct {
		level int
		want  time.Duration
	}{
		{0, 0},
		{1, 1 * day},
		{2, 3 * day},
		{3, 7 * day},
		{4, 14 * day},
		{5, 30 * day},
		{-2, 0},
		{9, 30 * day},
	}
	for _, c := range cases {
		if got := Interval(c.level); got != c.want {
			t.Errorf("Interval(%d) = %v, want %v", c.level, got, c.want)
		}
	}
}

func TestIsDue(t *testing.T) {
	now := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	it := Item{Word: "w", Level: 2, Due: now}
	if !it.IsDue(now) {
		t.Fatalf("item due exactly now should be due")
	}
	if !it.IsDue(now.Add(time.Second)) {
		t.Fatalf("item past its due time should be due")
	}
	if it.IsDue(now.Add(-time.Second)) {
		t.Fatalf("item before its due time should not be due")
	}
}
