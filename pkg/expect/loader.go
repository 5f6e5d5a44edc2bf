package expect

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/netvalid/netvalid/pkg/testbed"
	"github.com/netvalid/netvalid/pkg/util"
)

// LoadDir loads every expected-state file present in dir. A device named in
// an expected file but absent from the testbed is a configuration error,
// not a network failure; it aborts the load. Missing files are fine — that
// protocol simply has nothing to validate.
func LoadDir(dir string, tb *testbed.Testbed) (*Set, error) {
	set := &Set{}

	if err := loadFile(dir, FileOSPF, tb, &set.OSPF); err != nil {
		return nil, err
	}
	if err := loadFile(dir, FileBGP, tb, &set.BGP); err != nil {
		return nil, err
	}
	if err := loadFile(dir, FileLDP, tb, &set.LDP); err != nil {
		return nil, err
	}
	if err := loadFile(dir, FileMPLS, tb, &set.MPLS); err != nil {
		return nil, err
	}
	if err := loadFile(dir, FileAAA, tb, &set.AAA); err != nil {
		return nil, err
	}

	if err := set.validate(tb); err != nil {
		return nil, err
	}

	util.WithField("dir", dir).Debugf("loaded expectations for %d protocols", set.protocolCount())
	return set, nil
}

// loadFile unmarshals one expected-state file into a device-keyed map and
// checks every device against the testbed.
func loadFile[M ~map[string]V, V any](dir, name string, tb *testbed.Testbed, dst *M) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var m M
	if err := yaml.Unmarshal(data, &m); err != nil {
		return util.NewConfigError(name, "expected-state YAML", err.Error())
	}

	names := make([]string, 0, len(m))
	for device := range m {
		names = append(names, device)
	}
	sort.Strings(names)
	for _, device := range names {
		if !tb.HasDevice(device) {
			return util.NewConfigError(name, "device "+device, "not present in testbed")
		}
	}

	*dst = m
	return nil
}

// validate applies schema checks that YAML types cannot express.
func (s *Set) validate(tb *testbed.Testbed) error {
	var vb util.ValidationBuilder

	for device, d := range s.OSPF {
		for _, peer := range d.Peers {
			if !util.IsIPv4(peer.PeerID) {
				vb.AddErrorf("%s: ospf peer_id %q is not an IPv4 router ID", device, peer.PeerID)
			}
		}
		for process, count := range d.NeighborCounts {
			if count < 0 {
				vb.AddErrorf("%s: ospf process %s has negative neighbor count", device, process)
			}
		}
	}
	for device, peers := range s.BGP {
		for ip := range peers {
			if !util.IsIPv4(ip) {
				vb.AddErrorf("%s: bgp peer %q is not an IPv4 address", device, ip)
			}
		}
	}
	for device, peers := range s.LDP {
		for _, peer := range peers {
			if !util.IsIPv4(util.StripLabelSpace(peer.PeerID)) {
				vb.AddErrorf("%s: ldp peer_id %q is not an LDP identifier", device, peer.PeerID)
			}
		}
	}
	for device, m := range s.MPLS {
		if m.TunnelCount != nil && *m.TunnelCount < 0 {
			vb.AddErrorf("%s: negative tunnel_count", device)
		}
		if m.ForwardingEntriesMin < 0 {
			vb.AddErrorf("%s: negative forwarding_entries_min", device)
		}
	}

	if vb.HasErrors() {
		err := vb.Build()
		return util.NewConfigError("expected-state", "schema", err.Error())
	}
	return nil
}

func (s *Set) protocolCount() int {
	n := 0
	if len(s.OSPF) > 0 {
		n++
	}
	if len(s.BGP) > 0 {
		n++
	}
	if len(s.LDP) > 0 {
		n++
	}
	if len(s.MPLS) > 0 {
		n++
	}
	if len(s.AAA) > 0 {
		n++
	}
	return n
}

// State returns the expected state for an OSPF peer, applying the default
// when unset.
func (p *OSPFPeer) State() string {
	if p.ExpectedState == "" {
		return DefaultOSPFState
	}
	return p.ExpectedState
}

// State returns the expected BGP session state, applying the default.
func (p *BGPPeer) State() string {
	if p.ExpectedState == "" {
		return DefaultBGPState
	}
	return p.ExpectedState
}

// State returns the expected LDP session state, applying the default.
func (p *LDPPeer) State() string {
	if p.ExpectedState == "" {
		return DefaultLDPState
	}
	return p.ExpectedState
}
