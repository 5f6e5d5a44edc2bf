package parser

import (
	"context"
	"strings"

	"github.com/netvalid/netvalid/pkg/util"
)

// iosxrOps implements Ops for IOS-XR devices. The neighbor tables share
// their columnar shape with IOS-XE, so those parsers are reused; MPLS
// interface output and the management-plane commands differ.
type iosxrOps struct {
	runner CommandRunner
}

func (o *iosxrOps) run(ctx context.Context, cmd string) (string, error) {
	out, err := o.runner.Run(ctx, cmd)
	if err != nil {
		return "", err
	}
	if strings.Contains(out, "% Invalid input") {
		return "", &util.ParseError{Device: o.runner.Device(), Command: cmd, Details: "command rejected by device"}
	}
	return out, nil
}

func (o *iosxrOps) OSPFNeighbors(ctx context.Context) ([]OSPFNeighbor, error) {
	out, err := o.run(ctx, "show ospf neighbor")
	if err != nil {
		return nil, err
	}
	return parseOSPFNeighborTable(out, ""), nil
}

func (o *iosxrOps) BGPNeighbors(ctx context.Context) ([]BGPNeighbor, error) {
	out, err := o.run(ctx, "show bgp summary")
	if err != nil {
		return nil, err
	}
	return parseBGPSummaryTable(out), nil
}

func (o *iosxrOps) LDPNeighbors(ctx context.Context) ([]LDPNeighbor, error) {
	out, err := o.run(ctx, "show mpls ldp neighbor")
	if err != nil {
		return nil, err
	}
	return parseLDPNeighborBlocks(out), nil
}

func (o *iosxrOps) MPLSInterfaces(ctx context.Context) ([]MPLSInterface, error) {
	out, err := o.run(ctx, "show mpls interfaces")
	if err != nil {
		return nil, err
	}
	return parseMPLSInterfacesXR(out), nil
}

func (o *iosxrOps) MPLSForwarding(ctx context.Context) ([]MPLSForwardingEntry, error) {
	out, err := o.run(ctx, "show mpls forwarding")
	if err != nil {
		return nil, err
	}
	return parseMPLSForwardingTable(out), nil
}

func (o *iosxrOps) TETunnels(ctx context.Context) ([]TETunnel, error) {
	out, err := o.run(ctx, "show mpls traffic-eng tunnels brief")
	if err != nil {
		return nil, err
	}
	return parseTETunnelsBrief(out), nil
}

func (o *iosxrOps) CDPNeighbors(ctx context.Context) ([]CDPNeighbor, error) {
	out, err := o.run(ctx, "show cdp neighbors detail")
	if err != nil {
		return nil, err
	}
	return parseCDPNeighborsDetail(out), nil
}

func (o *iosxrOps) AAA(ctx context.Context) (*AAAState, error) {
	state := &AAAState{}

	out, err := o.run(ctx, "show running-config aaa")
	if err != nil {
		return nil, err
	}
	parseAAAConfigXR(out, state)

	out, err = o.run(ctx, "show running-config username")
	if err != nil {
		return nil, err
	}
	parseUsernameBlocksXR(out, state)

	out, err = o.run(ctx, "show ssh server")
	if err != nil {
		return nil, err
	}
	state.SSHVersion = parseSSHVersionXR(out)

	out, err = o.run(ctx, "show running-config line")
	if err != nil {
		return nil, err
	}
	parseLineConfigXR(out, state)

	return state, nil
}

// parseMPLSInterfacesXR parses the IOS-XR MPLS interface table:
//
//	Interface                  LDP      Tunnel   Static   Enabled
//	GigabitEthernet0/0/0/0     Yes      No       No       Yes
func parseMPLSInterfacesXR(out string) []MPLSInterface {
	var interfaces []MPLSInterface

	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(strings.TrimSpace(line))
		if len(fields) < 5 || fields[0] == "Interface" || !isInterfaceName(fields[0]) {
			continue
		}
		interfaces = append(interfaces, MPLSInterface{
			Name:        fields[0],
			LDPEnabled:  strings.EqualFold(fields[1], "Yes"),
			Operational: strings.EqualFold(fields[4], "Yes"),
		})
	}
	return interfaces
}

// parseAAAConfigXR scans "show running-config aaa" output. XR has no
// new-model knob; any aaa configuration counts.
func parseAAAConfigXR(out string, state *AAAState) {
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "aaa ") {
			continue
		}
		state.NewModel = true
		if strings.HasPrefix(trimmed, "aaa authentication login ") {
			fields := strings.Fields(trimmed)
			if len(fields) > 4 {
				state.AuthenticationLogin = fields[4:]
			}
		}
	}
}

// parseUsernameBlocksXR collects user names from XR username blocks:
//
//	username admin
//	 group root-lr
//	!
func parseUsernameBlocksXR(out string, state *AAAState) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, "username ") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 1 {
			state.LocalUsers = append(state.LocalUsers, fields[1])
		}
	}
}

// parseSSHVersionXR extracts the version from "show ssh server":
//
//	SSH version : Cisco-2.0
func parseSSHVersionXR(out string) string {
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "SSH version") {
			continue
		}
		if _, ver, ok := strings.Cut(trimmed, ":"); ok {
			ver = strings.TrimSpace(ver)
			return strings.TrimPrefix(ver, "Cisco-")
		}
	}
	return ""
}

// parseLineConfigXR extracts transport and exec-timeout from XR line
// template blocks (line default / line template ...).
func parseLineConfigXR(out string, state *AAAState) {
	inLine := false
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "line "):
			inLine = true
		case trimmed == "!":
			inLine = false
		case inLine && strings.HasPrefix(trimmed, "transport input "):
			state.VTYTransport = strings.Fields(strings.TrimPrefix(trimmed, "transport input "))
		case inLine && strings.HasPrefix(trimmed, "exec-timeout "):
			state.ExecTimeout = strings.TrimSpace(strings.TrimPrefix(trimmed, "exec-timeout "))
		}
	}
}
