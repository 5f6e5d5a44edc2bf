package expect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/netvalid/netvalid/pkg/testbed"
	"github.com/netvalid/netvalid/pkg/util"
)

func testTestbed(t *testing.T) *testbed.Testbed {
	t.Helper()
	content := `
devices:
  router1:
    os: iosxe
    credentials:
      username: admin
      password: x
    connections:
      cli:
        host: 192.0.2.11
  router2:
    os: iosxr
    credentials:
      username: admin
      password: x
    connections:
      cli:
        host: 192.0.2.12
`
	path := filepath.Join(t.TempDir(), "testbed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	tb, err := testbed.Load(path)
	if err != nil {
		t.Fatalf("loading testbed: %v", err)
	}
	return tb
}

func writeExpected(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeExpected(t, dir, FileOSPF, `
router1:
  peers:
    - peer_id: 10.0.0.2
      expected_state: full/dr
    - peer_id: 10.0.0.3
  neighbor_counts:
    "1": 2
`)
	writeExpected(t, dir, FileBGP, `
router1:
  10.1.1.2:
    peer_as: "65002"
    expected_state: established
router2:
  10.1.1.1:
    peer_as: "65001"
`)
	writeExpected(t, dir, FileMPLS, `
router1:
  enabled_interfaces:
    - GigabitEthernet0/0
    - GigabitEthernet0/1
  tunnel_count: 2
  forwarding_entries_min: 10
`)

	set, err := LoadDir(dir, testTestbed(t))
	if err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	ospf := set.OSPF["router1"]
	if ospf == nil || len(ospf.Peers) != 2 {
		t.Fatalf("ospf expectations = %+v", ospf)
	}
	if ospf.Peers[0].State() != "full/dr" {
		t.Errorf("first peer state = %q", ospf.Peers[0].State())
	}
	// Default state applied
	if ospf.Peers[1].State() != DefaultOSPFState {
		t.Errorf("second peer state = %q, want default %q", ospf.Peers[1].State(), DefaultOSPFState)
	}
	if ospf.NeighborCounts["1"] != 2 {
		t.Errorf("neighbor_counts = %v", ospf.NeighborCounts)
	}

	bgp := set.BGP["router2"]["10.1.1.1"]
	if bgp == nil || bgp.PeerAS != "65001" {
		t.Fatalf("bgp expectation = %+v", bgp)
	}
	if bgp.State() != DefaultBGPState {
		t.Errorf("bgp default state = %q", bgp.State())
	}

	mpls := set.MPLS["router1"]
	if mpls == nil || mpls.TunnelCount == nil || *mpls.TunnelCount != 2 {
		t.Fatalf("mpls expectation = %+v", mpls)
	}

	// Files not present load as empty sections
	if set.LDP != nil || set.AAA != nil {
		t.Error("absent files should leave sections nil")
	}
}

func TestLoadDirUnknownDevice(t *testing.T) {
	dir := t.TempDir()
	writeExpected(t, dir, FileBGP, `
router9:
  10.1.1.2:
    peer_as: "65002"
`)
	_, err := LoadDir(dir, testTestbed(t))
	if err == nil {
		t.Fatal("expected error for device not in testbed")
	}
	if !errors.Is(err, util.ErrConfig) {
		t.Errorf("error should unwrap to ErrConfig, got %v", err)
	}
}

func TestLoadDirMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeExpected(t, dir, FileLDP, "router1: [unclosed\n")
	_, err := LoadDir(dir, testTestbed(t))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
	if !errors.Is(err, util.ErrConfig) {
		t.Errorf("error should unwrap to ErrConfig, got %v", err)
	}
}

func TestLoadDirRejectsBadPeerID(t *testing.T) {
	dir := t.TempDir()
	writeExpected(t, dir, FileOSPF, `
router1:
  peers:
    - peer_id: not-an-ip
`)
	if _, err := LoadDir(dir, testTestbed(t)); err == nil {
		t.Fatal("expected error for non-IP peer_id")
	}
}

func TestLoadDirEmpty(t *testing.T) {
	set, err := LoadDir(t.TempDir(), testTestbed(t))
	if err != nil {
		t.Fatalf("LoadDir on empty dir: %v", err)
	}
	if set.protocolCount() != 0 {
		t.Errorf("protocolCount = %d, want 0", set.protocolCount())
	}
}
