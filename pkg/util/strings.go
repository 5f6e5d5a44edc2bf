package util

import (
	"net"
	"strings"
)

// IsIPv4 reports whether s is a valid dotted-quad IPv4 address.
// Router IDs and OSPF/LDP peer IDs use the same format.
func IsIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil
}

// StripLabelSpace removes the label-space suffix from an LDP identifier,
// e.g. "10.0.0.1:0" becomes "10.0.0.1".
func StripLabelSpace(id string) string {
	if i := strings.LastIndex(id, ":"); i > 0 && IsIPv4(id[:i]) {
		return id[:i]
	}
	return id
}
