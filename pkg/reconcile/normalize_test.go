package reconcile

import "testing"

func TestInterface(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Gi0/1", "gigabitethernet0/1"},
		{"GigabitEthernet0/1", "gigabitethernet0/1"},
		{"Gi 0/1", "gigabitethernet0/1"},
		{"Ge0/0/0/0", "gigabitethernet0/0/0/0"},
		{"Fa0/24", "fastethernet0/24"},
		{"Fe1/0", "fastethernet1/0"},
		{"Te1/1/1", "tengigabitethernet1/1/1"},
		{"Eth0", "ethernet0"},
		{"Po10", "port-channel10"},
		{"PortCh1", "port-channel1"},
		{"Lo0", "loopback0"},
		{"Loopback0", "loopback0"},
		{"Tunnel1", "tunnel1"},
		// Prefix not followed by digit or slash is left alone
		{"geneve0", "geneve0"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Interface(tt.in); got != tt.want {
			t.Errorf("Interface(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// Normalizing twice must equal normalizing once, and the short and long
// spellings of the same interface must normalize identically.
func TestInterfaceIdempotent(t *testing.T) {
	names := []string{"Gi0/1", "GigabitEthernet0/1", "Te1/0/1", "Po1", "port-channel1", "Lo0"}
	for _, name := range names {
		once := Interface(name)
		twice := Interface(once)
		if once != twice {
			t.Errorf("Interface not idempotent for %q: %q != %q", name, once, twice)
		}
	}

	if Interface("Gi0/1") != Interface("GigabitEthernet0/1") {
		t.Error("short and long forms normalize differently")
	}
	if Interface("Po1") != Interface("Port-channel1") {
		t.Error("Po1 and Port-channel1 normalize differently")
	}
}

func TestOSPFState(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"full/dr", "full/dr"},
		{"FULL/BDR", "full/bdr"},
		{"full/  -", "full"},
		{"full/", "full"},
		{" full ", "full"},
		{" full/BDr ", "full/bdr"},
		{"2WAY/DROTHER", "2way/drother"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := OSPFState(tt.in); got != tt.want {
			t.Errorf("OSPFState(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestState(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Established", "established"},
		{" established ", "established"},
		{"Idle", "idle"},
		{"OPER", "oper"},
	}
	for _, tt := range tests {
		if got := State(tt.in); got != tt.want {
			t.Errorf("State(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
