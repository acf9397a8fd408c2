package contributions

import "testing"

func TestLevelFromLabel(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{"NONE", 0},
		{"FIRST_QUARTILE", 1},
		{"SECOND_QUARTILE", 2},
		{"THIRD_QUARTILE", 3},
		{"FOURTH_QUARTILE", 4},
		{"WHATEVER", 0},
		{"", 0},
		{"fourth_quartile", 0},
	}

	for _, tt := range tests {
		if got := levelFromLabel(tt.label); got != tt.want {
			t.Errorf("levelFromLabel(%q) = %d, want %d", tt.label, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	raw := []CalendarWeek{
		{ContributionDays: []CalendarDay{
			{Date: "2024-01-01", ContributionCount: 0, ContributionLevel: "NONE"},
			{Date: "2024-01-02", ContributionCount: 3, ContributionLevel: "FIRST_QUARTILE"},
			{Date: "2024-01-03", ContributionCount: 12, ContributionLevel: "FOURTH_QUARTILE"},
		}},
		{ContributionDays: []CalendarDay{
			{Date: "2024-01-08", ContributionCount: 1, ContributionLevel: "GARBAGE"},
		}},
	}

	weeks := Normalize(raw)

	if len(weeks) != 2 {
		t.Fatalf("expected 2 weeks, got %d", len(weeks))
	}
	if len(weeks[0].Days) != 3 || len(weeks[1].Days) != 1 {
		t.Fatalf("unexpected day counts: %d, %d", len(weeks[0].Days), len(weeks[1].Days))
	}

	first := weeks[0].Days[0]
	if first.Date != "2024-01-01" || first.Count != 0 || first.Level != 0 {
		t.Errorf("unexpected first day: %+v", first)
	}
	if weeks[0].Days[2].Level != 4 {
		t.Errorf("FOURTH_QUARTILE should map to level 4, got %d", weeks[0].Days[2].Level)
	}
	// Unrecognized labels degrade to level 0 instead of failing the query.
	if weeks[1].Days[0].Level != 0 {
		t.Errorf("garbage label should map to level 0, got %d", weeks[1].Days[0].Level)
	}
}

func TestNormalizeLevelCountInvariant(t *testing.T) {
	raw := []CalendarWeek{
		{ContributionDays: []CalendarDay{
			{Date: "2024-02-01", ContributionCount: 0, ContributionLevel: "NONE"},
			{Date: "2024-02-02", ContributionCount: 1, ContributionLevel: "FIRST_QUARTILE"},
			{Date: "2024-02-03", ContributionCount: 7, ContributionLevel: "SECOND_QUARTILE"},
			{Date: "2024-02-04", ContributionCount: 20, ContributionLevel: "THIRD_QUARTILE"},
		}},
	}

	for _, week := range Normalize(raw) {
		for _, day := range week.Days {
			if day.Count == 0 && day.Level != 0 {
				t.Errorf("day %s: count 0 must mean level 0, got level %d", day.Date, day.Level)
			}
			if day.Count > 0 && day.Level == 0 {
				t.Errorf("day %s: count %d must not map to level 0", day.Date, day.Count)
			}
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if weeks := Normalize(nil); len(weeks) != 0 {
		t.Errorf("expected empty result, got %d weeks", len(weeks))
	}
}
