package model

import "testing"

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-02")
	if err != nil {
		t.Fatal(err)
	}
	if d.String() != "2025-01-02" {
		t.Errorf("String = %q, want 2025-01-02", d.String())
	}
	if _, err := ParseDate("01/02/2025"); err == nil {
		t.Error("US-format date accepted")
	}
	if _, err := ParseDate(""); err == nil {
		t.Error("empty date accepted")
	}
}

func TestDate_AddDays(t *testing.T) {
	d := MustParseDate("2025-01-31")
	if got := d.AddDays(1).String(); got != "2025-02-01" {
		t.Errorf("month rollover = %s, want 2025-02-01", got)
	}
	if got := d.AddDays(-31).String(); got != "2024-12-31" {
		t.Errorf("year rollback = %s, want 2024-12-31", got)
	}
}

func TestDate_Ordering(t *testing.T) {
	a := MustParseDate("2025-01-02")
	b := MustParseDate("2025-01-03")
	if !a.Before(b) || b.Before(a) {
		t.Error("Before ordering wrong")
	}
	if !b.After(a) || a.After(b) {
		t.Error("After ordering wrong")
	}
	if a.Before(a) || a.After(a) {
		t.Error("date compares against itself")
	}
}

func TestDate_Comparable(t *testing.T) {
	seen := map[Date]bool{MustParseDate("2025-01-02"): true}
	if !seen[MustParseDate("2025-01-02")] {
		t.Error("equal dates do not collide as map keys")
	}
	if (Date{}).IsZero() != true {
		t.Error("zero date not detected")
	}
	if MustParseDate("2025-01-02").IsZero() {
		t.Error("real date reported zero")
	}
}
