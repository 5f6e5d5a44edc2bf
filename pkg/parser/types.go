// Package parser converts raw show-command output into structured state.
// Each supported OS has its own parser set since output shapes differ
// between platforms; Lookup selects the right set for a device.
package parser

// OSPFNeighbor is one entry from the OSPF neighbor table.
type OSPFNeighbor struct {
	ID        string `json:"id"`
	Priority  string `json:"priority,omitempty"`
	State     string `json:"state"`
	Address   string `json:"address,omitempty"`
	Interface string `json:"interface,omitempty"`
	Process   string `json:"process,omitempty"`
}

// BGPNeighbor is one peer from the BGP summary table.
type BGPNeighbor struct {
	IP       string `json:"ip"`
	RemoteAS string `json:"remote_as"`
	State    string `json:"state"`
	PfxRcvd  int    `json:"prefixes_received"`
	UpDown   string `json:"up_down,omitempty"`
}

// LDPNeighbor is one LDP peering session.
type LDPNeighbor struct {
	PeerID string `json:"peer_id"` // LDP identifier without label space, e.g. "10.0.0.2"
	LDPID  string `json:"ldp_id"`  // full identifier, e.g. "10.0.0.2:0"
	State  string `json:"state"`
}

// MPLSInterface is one row of the MPLS interface table.
type MPLSInterface struct {
	Name        string `json:"name"`
	LDPEnabled  bool   `json:"ldp_enabled"`
	Operational bool   `json:"operational"`
}

// MPLSForwardingEntry is one row of the MPLS forwarding table.
type MPLSForwardingEntry struct {
	LocalLabel    string `json:"local_label"`
	OutgoingLabel string `json:"outgoing_label"`
	Prefix        string `json:"prefix"`
}

// TETunnel is one MPLS traffic-engineering tunnel.
type TETunnel struct {
	Name        string `json:"name"`
	Destination string `json:"destination,omitempty"`
	AdminState  string `json:"admin_state"`
	OperState   string `json:"oper_state"`
}

// CDPNeighbor is one adjacency from CDP neighbor detail output.
type CDPNeighbor struct {
	DeviceID       string `json:"device_id"`
	LocalInterface string `json:"local_interface"`
	PortID         string `json:"port_id"`
	Platform       string `json:"platform,omitempty"`
	Capabilities   string `json:"capabilities,omitempty"`
}

// Hostname returns the neighbor's bare hostname with any domain suffix
// stripped, the form device names take in a testbed.
func (n *CDPNeighbor) Hostname() string {
	for i := 0; i < len(n.DeviceID); i++ {
		if n.DeviceID[i] == '.' {
			return n.DeviceID[:i]
		}
	}
	return n.DeviceID
}

// AAAState captures the management-plane configuration checked by the AAA
// validator: authentication setup, SSH server, local users, and VTY lines.
type AAAState struct {
	NewModel            bool     `json:"new_model"`
	AuthenticationLogin []string `json:"authentication_login,omitempty"`
	SSHVersion          string   `json:"ssh_version,omitempty"`
	LocalUsers          []string `json:"local_users,omitempty"`
	VTYTransport        []string `json:"vty_transport,omitempty"`
	ExecTimeout         string   `json:"exec_timeout,omitempty"`
}
