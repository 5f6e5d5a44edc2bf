package reconcile

import "strings"

// interfacePrefix maps an abbreviated interface prefix to its canonical
// long form. Longer prefixes are listed before their own prefixes so that
// "portch" wins over "po".
var interfacePrefixes = []struct {
	short string
	long  string
}{
	{"portch", "port-channel"},
	{"gi", "gigabitethernet"},
	{"ge", "gigabitethernet"},
	{"fa", "fastethernet"},
	{"fe", "fastethernet"},
	{"te", "tengigabitethernet"},
	{"eth", "ethernet"},
	{"po", "port-channel"},
	{"lo", "loopback"},
}

// Interface canonicalizes an interface name for comparison: spaces removed,
// lowercased, and abbreviated prefixes expanded ("Gi0/1" and
// "GigabitEthernet0/1" normalize to the same string). A prefix is only
// expanded when followed by a digit or '/', so already-long names pass
// through unchanged and the function is idempotent.
func Interface(name string) string {
	if name == "" {
		return ""
	}
	normalized := strings.ToLower(strings.ReplaceAll(name, " ", ""))
	for _, p := range interfacePrefixes {
		if strings.HasPrefix(normalized, p.short) {
			rest := normalized[len(p.short):]
			if rest != "" && (rest[0] == '/' || (rest[0] >= '0' && rest[0] <= '9')) {
				return p.long + rest
			}
		}
	}
	return normalized
}

// OSPFState normalizes an OSPF neighbor state string. DR/BDR suffixes are
// kept ("FULL/DR" becomes "full/dr") while empty or dash suffixes collapse
// to the bare state ("FULL/  -" becomes "full").
func OSPFState(state string) string {
	state = strings.ToLower(strings.TrimSpace(state))
	if state == "" {
		return ""
	}
	left, right, found := strings.Cut(state, "/")
	if !found {
		return state
	}
	left = strings.TrimSpace(left)
	right = strings.TrimSpace(right)
	if right == "" || right == "-" {
		return left
	}
	return left + "/" + strings.TrimRight(right, "/")
}

// State normalizes a BGP or LDP session state for case-insensitive
// comparison.
func State(state string) string {
	return strings.ToLower(strings.TrimSpace(state))
}
