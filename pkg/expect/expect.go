// Package expect loads the operator-authored expected-state YAML files, one
// per protocol. A Set is loaded once per run and immutable thereafter.
package expect

// Default expected states applied when a record omits expected_state.
const (
	DefaultOSPFState = "full"
	DefaultBGPState  = "established"
	DefaultLDPState  = "oper"
)

// File names looked up in the expected-state directory. All are optional;
// a validator without expectations has nothing to check.
const (
	FileOSPF = "expected_ospf_peers.yaml"
	FileBGP  = "expected_bgp_peers.yaml"
	FileLDP  = "expected_ldp_peers.yaml"
	FileMPLS = "expected_mpls_config.yaml"
	FileAAA  = "expected_aaa_config.yaml"
)

// Set is the full expected state for a run, keyed by device name.
type Set struct {
	OSPF map[string]*OSPFDevice
	BGP  map[string]map[string]*BGPPeer
	LDP  map[string][]*LDPPeer
	MPLS map[string]*MPLSDevice
	AAA  map[string]*AAADevice
}

// OSPFDevice is the expected OSPF state for one device.
type OSPFDevice struct {
	Peers []*OSPFPeer `yaml:"peers,omitempty"`
	// NeighborCounts maps OSPF process ID to the expected neighbor count.
	NeighborCounts map[string]int `yaml:"neighbor_counts,omitempty"`
}

// OSPFPeer is one expected OSPF adjacency.
type OSPFPeer struct {
	PeerID        string `yaml:"peer_id"`
	ExpectedState string `yaml:"expected_state,omitempty"`
}

// BGPPeer is one expected BGP session, keyed by peer IP in the file.
type BGPPeer struct {
	PeerAS        string `yaml:"peer_as,omitempty"`
	ExpectedState string `yaml:"expected_state,omitempty"`
}

// LDPPeer is one expected LDP session.
type LDPPeer struct {
	PeerID        string `yaml:"peer_id"`
	ExpectedState string `yaml:"expected_state,omitempty"`
}

// MPLSDevice is the expected MPLS configuration for one device.
type MPLSDevice struct {
	EnabledInterfaces    []string `yaml:"enabled_interfaces,omitempty"`
	TunnelCount          *int     `yaml:"tunnel_count,omitempty"`
	ForwardingEntriesMin int      `yaml:"forwarding_entries_min,omitempty"`
}

// AAADevice is the expected management-plane configuration for one device.
// Nil/empty fields are not checked.
type AAADevice struct {
	NewModel            *bool    `yaml:"new_model,omitempty"`
	AuthenticationLogin []string `yaml:"authentication_login,omitempty"`
	SSHVersion          string   `yaml:"ssh_version,omitempty"`
	LocalUsers          []string `yaml:"local_users,omitempty"`
	VTYTransport        []string `yaml:"vty_transport,omitempty"`
	ExecTimeout         string   `yaml:"exec_timeout,omitempty"`
}
