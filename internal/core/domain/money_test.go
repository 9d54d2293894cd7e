package domain

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"100.00", 10000, false},
		{"40", 4000, false},
		{"0.01", 1, false},
		{"12,34", 1234, false},
		{".50", 50, false},
		{"12.345", 1234, false},
		{"12.346", 1235, false},
		{" 7.5 ", 750, false},
		{"0", 0, true},
		{"0.00", 0, true},
		{"-5", 0, true},
		{"+5", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"1.2.3", 0, true},
		{"99999999999999999999", 0, true},
	}

	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseAmount(%q) expected error, got %d", tc.in, got)
			} else if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseAmount(%q) error is not ErrInvalidArgument: %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseAmount(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{10000, "100.00"},
		{4050, "40.50"},
		{-250, "-2.50"},
	}
	for _, tc := range cases {
		if got := FormatAmount(tc.in); got != tc.want {
			t.Errorf("FormatAmount(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	got, err := ParseAmount(FormatAmount(123456))
	if err != nil {
		t.Fatalf("round trip parse: %v", err)
	}
	if got != 123456 {
		t.Fatalf("round trip = %d, want 123456", got)
	}
}
