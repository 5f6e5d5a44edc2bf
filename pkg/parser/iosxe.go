package parser

import (
	"context"
	"strconv"
	"strings"

	"github.com/netvalid/netvalid/pkg/util"
)

// iosxeOps implements Ops for IOS-XE devices.
type iosxeOps struct {
	runner CommandRunner
}

// run executes a command and rejects output the CLI itself flagged invalid.
func (o *iosxeOps) run(ctx context.Context, cmd string) (string, error) {
	out, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	if strings.Contains(out, "% Invalid input") {
		return "", &util.ParseError{Device: o.runner.Device(), Command: cmd, Details: "command rejected by device"}
	}
	return out, nil
}

func (o *iosxeOps) OSPFNeighbors(ctx context.Context) ([]OSPFNeighbor, error) {
	out, err := o.run(ctx, "show ip ospf neighbor")
	if err != nil {
		return nil, err
	}
	return parseOSPFNeighborTable(out, ""), nil
}

func (o *iosxeOps) BGPNeighbors(ctx context.Context) ([]BGPNeighbor, error) {
	out, err := o.run(ctx, "show ip bgp summary")
	if err != nil {
		return nil, err
	}
	return parseBGPSummaryTable(out), nil
}

func (o *iosxeOps) LDPNeighbors(ctx context.Context) ([]LDPNeighbor, error) {
	out, err := o.run(ctx, "show mpls ldp neighbor")
	if err != nil {
		return nil, err
	}
	return parseLDPNeighborBlocks(out), nil
}

func (o *iosxeOps) MPLSInterfaces(ctx context.Context) ([]MPLSInterface, error) {
	out, err := o.run(ctx, "show mpls interfaces")
	if err != nil {
		return nil, err
	}
	return parseMPLSInterfacesXE(out), nil
}

func (o *iosxeOps) MPLSForwarding(ctx context.Context) ([]MPLSForwardingEntry, error) {
	out, err := o.run(ctx, "show mpls forwarding-table")
	if err != nil {
		return nil, err
	}
	return parseMPLSForwardingTable(out), nil
}

func (o *iosxeOps) TETunnels(ctx context.Context) ([]TETunnel, error) {
	out, err := o.run(ctx, "show mpls traffic-eng tunnels brief")
	if err != nil {
		return nil, err
	}
	return parseTETunnelsBrief(out), nil
}

func (o *iosxeOps) CDPNeighbors(ctx context.Context) ([]CDPNeighbor, error) {
	out, err := o.run(ctx, "show cdp neighbors detail")
	if err != nil {
		return nil, err
	}
	return parseCDPNeighborsDetail(out), nil
}

func (o *iosxeOps) AAA(ctx context.Context) (*AAAState, error) {
	state := &AAAState{}

	out, err := o.run(ctx, "show running-config | include ^aaa |^username ")
	if err != nil {
		return nil, err
	}
	parseAAARunningConfig(out, state)

	out, err = o.run(ctx, "show ip ssh")
	if err != nil {
		return nil, err
	}
	state.SSHVersion = parseSSHVersion(out)

	out, err = o.run(ctx, "show running-config | section line vty")
	if err != nil {
		return nil, err
	}
	parseVTYLines(out, state)

	return state, nil
}

// parseOSPFNeighborTable parses the columnar OSPF neighbor table shared by
// IOS-XE and IOS-XR:
//
//	Neighbor ID     Pri   State           Dead Time   Address         Interface
//	10.0.0.2          1   FULL/DR         00:00:33    192.0.2.2       GigabitEthernet0/1
//
// The state column can contain internal whitespace ("FULL/  -"), so fields
// between the priority and the trailing dead-time/address/interface triple
// are rejoined. IOS-XR interleaves "Neighbors for OSPF <proc>" headers which
// set the process for subsequent rows.
func parseOSPFNeighborTable(out, defaultProcess string) []OSPFNeighbor {
	var neighbors []OSPFNeighbor
	process := defaultProcess

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "Neighbors for OSPF") {
			fields := strings.Fields(trimmed)
			process = strings.TrimSuffix(fields[len(fields)-1], ",")
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 6 || !util.IsIPv4(fields[0]) {
			continue
		}
		n := len(fields)
		neighbors = append(neighbors, OSPFNeighbor{
			ID:        fields[0],
			Priority:  fields[1],
			State:     strings.Join(fields[2:n-3], ""),
			Address:   fields[n-2],
			Interface: fields[n-1],
			Process:   process,
		})
	}
	return neighbors
}

// parseBGPSummaryTable parses the BGP summary neighbor table. A numeric
// final column means the session is established and the value is the
// received prefix count; otherwise the column is the session state.
func parseBGPSummaryTable(out string) []BGPNeighbor {
	var neighbors []BGPNeighbor

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 10 || !util.IsIPv4(fields[0]) {
			continue
		}
		// Neighbor V/Spk AS MsgRcvd MsgSent TblVer InQ OutQ Up/Down State/PfxRcd
		nbr := BGPNeighbor{
			IP:       fields[0],
			RemoteAS: fields[2],
			UpDown:   fields[8],
		}
		state := strings.Join(fields[9:], " ")
		if pfx, err := strconv.Atoi(state); err == nil {
			nbr.State = "Established"
			nbr.PfxRcvd = pfx
		} else {
			nbr.State = state
		}
		neighbors = append(neighbors, nbr)
	}
	return neighbors
}

// parseLDPNeighborBlocks parses "show mpls ldp neighbor" output. Both
// IOS-XE and IOS-XR emit per-peer blocks:
//
//	Peer LDP Ident: 10.0.0.2:0; Local LDP Ident 10.0.0.1:0
//	    TCP connection: 10.0.0.2.646 - 10.0.0.1.21828
//	    State: Oper; Msgs sent/rcvd: 1613/1611; Downstream
//
// XR spells the first line "Peer LDP Identifier:".
func parseLDPNeighborBlocks(out string) []LDPNeighbor {
	var neighbors []LDPNeighbor
	var current *LDPNeighbor

	flush := func() {
		if current != nil {
			neighbors = append(neighbors, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "Peer LDP Ident"):
			flush()
			_, rest, ok := strings.Cut(trimmed, ":")
			if !ok {
				continue
			}
			id := strings.TrimSpace(rest)
			if i := strings.IndexByte(id, ';'); i >= 0 {
				id = strings.TrimSpace(id[:i])
			}
			current = &LDPNeighbor{
				LDPID:  id,
				PeerID: util.StripLabelSpace(id),
			}
		case strings.HasPrefix(trimmed, "State:") && current != nil:
			state := strings.TrimSpace(strings.TrimPrefix(trimmed, "State:"))
			if i := strings.IndexByte(state, ';'); i >= 0 {
				state = strings.TrimSpace(state[:i])
			}
			current.State = state
		}
	}
	flush()
	return neighbors
}

// parseMPLSInterfacesXE parses the IOS-XE MPLS interface table:
//
//	Interface              IP            Tunnel   BGP Static Operational
//	GigabitEthernet0/0     Yes (ldp)     No       No  No     Yes
func parseMPLSInterfacesXE(out string) []MPLSInterface {
	var interfaces []MPLSInterface

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 2 || fields[0] == "Interface" {
			continue
		}
		if !isInterfaceName(fields[0]) {
			continue
		}
		intf := MPLSInterface{Name: fields[0]}
		// "Yes (ldp)" marks LDP; a bare "Yes" in the IP column also counts
		// as label switching enabled via LDP on older releases.
		ipCol := strings.ToLower(fields[1])
		intf.LDPEnabled = strings.HasPrefix(ipCol, "yes")
		intf.Operational = strings.EqualFold(fields[len(fields)-1], "Yes")
		interfaces = append(interfaces, intf)
	}
	return interfaces
}

// parseMPLSForwardingTable counts label-switched forwarding entries. Rows
// start with a numeric local label; continuation lines are skipped.
func parseMPLSForwardingTable(out string) []MPLSForwardingEntry {
	var entries []MPLSForwardingEntry

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		entry := MPLSForwardingEntry{LocalLabel: fields[0]}
		// "Pop Label" and "No Label" occupy two columns
		if (fields[1] == "Pop" || fields[1] == "No") && len(fields) > 3 && fields[2] == "Label" {
			entry.OutgoingLabel = fields[1] + " " + fields[2]
			entry.Prefix = fields[3]
		} else {
			entry.OutgoingLabel = fields[1]
			entry.Prefix = fields[2]
		}
		entries = append(entries, entry)
	}
	return entries
}

// parseTETunnelsBrief parses "show mpls traffic-eng tunnels brief" rows:
//
//	TUNNEL NAME                      DESTINATION      UP IF     DOWN IF   STATE/PROT
//	router1_t1                       10.0.0.2         -         Gi0/0     up/up
func parseTETunnelsBrief(out string) []TETunnel {
	var tunnels []TETunnel

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 5 {
			continue
		}
		stateProt := fields[len(fields)-1]
		admin, oper, found := strings.Cut(stateProt, "/")
		if !found || !util.IsIPv4(fields[1]) {
			continue
		}
		tunnels = append(tunnels, TETunnel{
			Name:        fields[0],
			Destination: fields[1],
			AdminState:  admin,
			OperState:   oper,
		})
	}
	return tunnels
}

// parseCDPNeighborsDetail parses "show cdp neighbors detail" entry blocks
// separated by dashed lines.
func parseCDPNeighborsDetail(out string) []CDPNeighbor {
	var neighbors []CDPNeighbor
	var current *CDPNeighbor

	flush := func() {
		if current != nil && current.DeviceID != "" {
			neighbors = append(neighbors, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "----"):
			flush()
			current = &CDPNeighbor{}
		case strings.HasPrefix(trimmed, "Device ID:"):
			if current == nil {
				current = &CDPNeighbor{}
			}
			current.DeviceID = strings.TrimSpace(strings.TrimPrefix(trimmed, "Device ID:"))
		case strings.HasPrefix(trimmed, "Platform:") && current != nil:
			rest := strings.TrimPrefix(trimmed, "Platform:")
			platform, caps, _ := strings.Cut(rest, ",")
			current.Platform = strings.TrimSpace(platform)
			caps = strings.TrimSpace(caps)
			current.Capabilities = strings.TrimSpace(strings.TrimPrefix(caps, "Capabilities:"))
		case strings.HasPrefix(trimmed, "Interface:") && current != nil:
			rest := strings.TrimPrefix(trimmed, "Interface:")
			local, port, _ := strings.Cut(rest, ",")
			current.LocalInterface = strings.TrimSpace(local)
			port = strings.TrimSpace(port)
			port = strings.TrimPrefix(port, "Port ID (outgoing port):")
			current.PortID = strings.TrimSpace(port)
		}
	}
	flush()
	return neighbors
}

// parseAAARunningConfig scans aaa and username lines from running config.
func parseAAARunningConfig(out string, state *AAAState) {
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "aaa new-model":
			state.NewModel = true
		case strings.HasPrefix(trimmed, "aaa authentication login "):
			fields := strings.Fields(trimmed)
			// aaa authentication login <list> <method...>
			if len(fields) > 4 {
				state.AuthenticationLogin = fields[4:]
			}
		case strings.HasPrefix(trimmed, "username "):
			fields := strings.Fields(trimmed)
			if len(fields) > 1 {
				state.LocalUsers = append(state.LocalUsers, fields[1])
			}
		}
	}
}

// parseSSHVersion extracts the version from "show ip ssh":
//
//	SSH Enabled - version 2.0
func parseSSHVersion(out string) string {
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "SSH Enabled") {
			continue
		}
		if _, ver, ok := strings.Cut(trimmed, "version "); ok {
			return strings.TrimSpace(ver)
		}
	}
	return ""
}

// parseVTYLines extracts transport and exec-timeout from "line vty" blocks.
func parseVTYLines(out string, state *AAAState) {
	inVTY := false
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "line vty"):
			inVTY = true
		case strings.HasPrefix(trimmed, "line "):
			inVTY = false
		case inVTY && strings.HasPrefix(trimmed, "transport input "):
			state.VTYTransport = strings.Fields(strings.TrimPrefix(trimmed, "transport input "))
		case inVTY && strings.HasPrefix(trimmed, "exec-timeout "):
			state.ExecTimeout = strings.TrimSpace(strings.TrimPrefix(trimmed, "exec-timeout "))
		}
	}
}

// isInterfaceName reports whether s looks like an interface name: a letter
// prefix followed by a slotted number.
func isInterfaceName(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			return true
		}
		if !isLetter(c) && c != '-' {
			return false
		}
	}
	return false
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
