package ui

import "testing"

func TestToRoman(t *testing.T) {
	tests := map[int]string{
		-1:   "",
		0:    "",
		1:    "I",
		4:    "IV",
		9:    "IX",
		14:   "XIV",
		40:   "XL",
		99:   "XCIX",
		2024: "MMXXIV",
	}
	for in, want := range tests {
		if got := toRoman(in); got != want {
			t.Errorf("toRoman(%d) = %q, want %q", in, got, want)
		}
	}
}
