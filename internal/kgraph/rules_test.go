package kgraph

import "testing"

func TestRelationsEquivalent(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"형량", "형량", true},
		{"형량", "선고", true},
		{"sentence", "형량", true},
		{"Sentence", " sentencing ", true},
		{"형량", "날짜", false},
		{"date", "발표일", true},
		{"ceo", "CEO", true},
		{"형량", "금액", false},
	}
	for _, tc := range tests {
		if got := RelationsEquivalent(tc.a, tc.b); got != tc.want {
			t.Errorf("RelationsEquivalent(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestObjectsConflict(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"korean sentence lengths differ", "징역 3년", "징역 5년", true},
		{"korean sentence lengths equal", "징역 3년", "징역 3년", false},
		{"numbers with separators", "1,000억 원", "1000억 원", false},
		{"plain numbers differ", "42", "43", true},
		{"dates equal across formats", "2024-02-01", "2024년 2월 1일", false},
		{"dates differ", "2024년 2월 1일", "2024년 3월 1일", true},
		{"free text folded equal", "Seoul  Central Court", "seoul central court", false},
		{"free text differs", "서울남부지법", "서울중앙지법", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, why := ObjectsConflict(tc.a, tc.b)
			if got != tc.want {
				t.Errorf("ObjectsConflict(%q, %q) = %v (%s), want %v", tc.a, tc.b, got, why, tc.want)
			}
			if got && why == "" {
				t.Error("conflict must carry an explanation")
			}
		})
	}
}

func TestFold(t *testing.T) {
	if got := Fold("  강영권 \t회장 "); got != "강영권회장" {
		t.Errorf("Fold = %q", got)
	}
	if got := Fold("Edison Motors"); got != "edisonmotors" {
		t.Errorf("Fold = %q", got)
	}
}
