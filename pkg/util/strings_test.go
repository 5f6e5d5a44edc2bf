package util

import "testing"

func TestIsIPv4(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"10.0.0.1", true},
		{"192.0.2.255", true},
		{"10.0.0.256", false},
		{"2001:db8::1", false},
		{"router1", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsIPv4(tt.in); got != tt.want {
			t.Errorf("IsIPv4(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStripLabelSpace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"10.0.0.1:0", "10.0.0.1"},
		{"10.0.0.1", "10.0.0.1"},
		{"not-an-id:0", "not-an-id:0"},
	}
	for _, tt := range tests {
		if got := StripLabelSpace(tt.in); got != tt.want {
			t.Errorf("StripLabelSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
