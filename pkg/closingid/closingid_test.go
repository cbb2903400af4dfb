package closingid

import (
	"testing"
	"time"

	"github.com/ZaighumCheema47/klap-closing-app/internal/domain/enum"
)

func TestMake(t *testing.T) {
	date := time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC)

	if got := Make(enum.BranchCantt, date); got != "CANTT290126CR" {
		t.Errorf("Make(cantt) = %q, want CANTT290126CR", got)
	}
	if got := Make(enum.BranchDHA, date); got != "DHA290126CR" {
		t.Errorf("Make(dha) = %q, want DHA290126CR", got)
	}
}

func TestMakeInjective(t *testing.T) {
	d1 := time.Date(2026, time.January, 29, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, time.January, 30, 0, 0, 0, 0, time.UTC)

	if Make(enum.BranchCantt, d1) == Make(enum.BranchCantt, d2) {
		t.Error("same branch, different dates must produce different ids")
	}
	if Make(enum.BranchCantt, d1) == Make(enum.BranchDHA, d1) {
		t.Error("different branches, same date must produce different ids")
	}

	// Time-of-day must not leak into the id: one closing per day.
	evening := time.Date(2026, time.January, 29, 23, 45, 0, 0, time.UTC)
	if Make(enum.BranchCantt, d1) != Make(enum.BranchCantt, evening) {
		t.Error("ids for the same calendar day must match regardless of time")
	}
}

func TestParse(t *testing.T) {
	branch, date, err := Parse("CANTT290126CR")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if branch != enum.BranchCantt {
		t.Errorf("branch = %v, want cantt", branch)
	}
	if date.Day() != 29 || date.Month() != time.January || date.Year() != 2026 {
		t.Errorf("date = %v, want 2026-01-29", date)
	}

	for _, bad := range []string{"", "290126CR", "CANTT290126", "XYZ290126CR", "DHA990199CR"} {
		if _, _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) should fail", bad)
		}
	}
}
