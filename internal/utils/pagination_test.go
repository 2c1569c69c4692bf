package utils

import "testing"

func TestPageParams(t *testing.T) {
	cases := []struct {
		pageStr  string
		sizeStr  string
		wantPage int
		wantSize int
	}{
		// empty -> defaults
		{"", "", 1, 20},
		// plain values pass through
		{"2", "50", 2, 50},
		{"1", "100", 1, 100},
		// below range -> defaults
		{"0", "0", 1, 20},
		{"-5", "-1", 1, 20},
		// oversized page_size -> default, not the cap
		{"3", "9999", 3, 20},
		// unparsable -> defaults (no trim)
		{"x", " 42", 1, 20},
		// overflow -> defaults
		{"999999999999999999999999", "999999999999999999999999", 1, 20},
	}

	for _, tc := range cases {
		page, size := PageParams(tc.pageStr, tc.sizeStr)
		if page != tc.wantPage || size != tc.wantSize {
			t.Fatalf("PageParams(%q, %q) = (%d, %d); want (%d, %d)",
				tc.pageStr, tc.sizeStr, page, size, tc.wantPage, tc.wantSize)
		}
	}
}

func Test_atoiDefault(t *testing.T) {
	if got := atoiDefault("42", 0); got != 42 {
		t.Fatalf("atoiDefault(%q, 0) = %d; want 42", "42", got)
	}
	if got := atoiDefault("0012", 99); got != 12 {
		t.Fatalf("atoiDefault(%q, 99) = %d; want 12", "0012", got)
	}
}
