package thumb

import "testing"

func TestExpected(t *testing.T) {
	cases := []struct {
		word string
		want Side
	}{
		{"fast", SideLeft},
		{"tap", SideLeft},
		{"home", SideRight},
		{"you", SideRight},
		{"Quick", SideLeft},
		{"", SideUnknown},
	}
	for _, tc := range cases {
		if got := Expected(tc.word); got != tc.want {
			t.Errorf("Expected(%q) = %v, want %v", tc.word, got, tc.want)
		}
	}
}

func TestInferFromRune(t *testing.T) {
	if got := InferFromRune('g'); got != SideLeft {
		t.Fatalf("InferFromRune('g') = %v, want left", got)
	}
	if got := InferFromRune('H'); got != SideRight {
		t.Fatalf("InferFromRune('H') = %v, want right", got)
	}
	for _, r := range []rune{'1', ' ', '-', 'é'} {
		if got := InferFromRune(r); got != SideUnknown {
			t.Errorf("InferFromRune(%q) = %v, want unknown", r, got)
		}
	}
}

func TestAllLeftAllRight(t *testing.T) {
	if !AllLeft("fast") {
		t.Errorf("expected fast to be all-left")
	}
	if AllLeft("flow") {
		t.Errorf("flow contains right-side letters")
	}
	if !AllRight("null") {
		t.Errorf("expected null to be all-right")
	}
	if AllRight("home") {
		t.Errorf("home contains left-side letters")
	}
	if AllLeft("") || AllRight("") {
		t.Errorf("empty word must not classify as single-side")
	}
}
