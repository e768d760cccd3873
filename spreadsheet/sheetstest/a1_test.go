package sheetstest

import (
	"reflect"
	"testing"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		rng      string
		expected area
	}{
		{"Sheet1", area{title: "Sheet1", top: 1, left: 1}},
		{"'Sheet 1'", area{title: "Sheet 1", top: 1, left: 1}},
		{"'O''Brien'!C2:C5", area{title: "O'Brien", top: 2, left: 3, bottom: 5, right: 3}},
		{"Log!A1:F", area{title: "Log", top: 1, left: 1, bottom: 0, right: 6}},
		{"'Sheet1'!3:7", area{title: "Sheet1", top: 3, left: 1, bottom: 7, right: 0}},
		{"Sheet1!B4", area{title: "Sheet1", top: 4, left: 2, bottom: 4, right: 2}},
		{"Sheet1!AA1:AB2", area{title: "Sheet1", top: 1, left: 27, bottom: 2, right: 28}},
	}

	for _, test := range tests {
		a, err := parseRange(test.rng)
		if err != nil {
			t.Fatalf("Unexpected error parsing '%v' (%v)", test.rng, err)
		}

		if !reflect.DeepEqual(*a, test.expected) {
			t.Errorf("Incorrect area for '%v'\n   expected: %+v\n   got:      %+v", test.rng, test.expected, *a)
		}
	}
}

func TestParseRangeWithInvalidRange(t *testing.T) {
	for _, rng := range []string{"'Sheet1", "'Sheet1'A1", "Sheet1!A1:$B"} {
		if _, err := parseRange(rng); err == nil {
			t.Errorf("Expected error parsing '%v', got nil", rng)
		}
	}
}
