package payments

import "testing"

func TestSanitizeMpesaNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"07 prefix", "0712345678", "254712345678"},
		{"01 prefix", "0112345678", "254112345678"},
		{"bare 7 prefix", "712345678", "254712345678"},
		{"bare 1 prefix", "112345678", "254112345678"},
		{"already normalized", "254712345678", "254712345678"},
		{"plus and spaces", "+254 712 345 678", "254712345678"},
		{"dashes", "0712-345-678", "254712345678"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SanitizeMpesaNumber(tc.input)
			if err != nil {
				t.Fatalf("SanitizeMpesaNumber(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("SanitizeMpesaNumber(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeMpesaNumber_Invalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"too short", "07123"},
		{"too long", "07123456789"},
		{"wrong country code", "255712345678"},
		{"wrong local prefix", "0912345678"},
		{"letters only", "not-a-number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got, err := SanitizeMpesaNumber(tc.input); err == nil {
				t.Errorf("SanitizeMpesaNumber(%q) = %q, want error", tc.input, got)
			}
		})
	}
}
