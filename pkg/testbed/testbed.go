// Package testbed loads and validates the YAML testbed file describing the
// devices under test, their credentials, and the cabled topology.
package testbed

import (
	"fmt"
	"sort"
)

// Supported device OS values. The OS selects which command parser set is
// used against the device.
const (
	OSIOSXE = "iosxe"
	OSIOSXR = "iosxr"
	OSSONiC = "sonic"
)

// Connection names conventionally present in a testbed file.
const (
	ConnCLI   = "cli"
	ConnRedis = "redis"
)

// Testbed is the parsed device inventory and topology.
type Testbed struct {
	Name    string
	Devices map[string]*Device

	links map[string]*Link
}

// Device is a single network device entry.
type Device struct {
	Name        string                 `yaml:"-"`
	OS          string                 `yaml:"os"`
	Platform    string                 `yaml:"platform,omitempty"`
	Credentials Credentials            `yaml:"credentials"`
	Connections map[string]*Connection `yaml:"connections"`
	Interfaces  map[string]*Interface  `yaml:"-"`
}

// Credentials holds the login credentials for a device. Password values
// support %ENV{VAR} expansion and interactive prompting when empty.
type Credentials struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Connection describes one way to reach a device.
type Connection struct {
	Protocol string `yaml:"protocol,omitempty"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port,omitempty"`
}

// Addr returns the host:port dial address, applying the default port for
// the connection's protocol when unset.
func (c *Connection) Addr() string {
	port := c.Port
	if port == 0 {
		if c.Protocol == "redis" {
			port = 6379
		} else {
			port = 22
		}
	}
	return fmt.Sprintf("%s:%d", c.Host, port)
}

// Interface is a device interface participating in a topology link.
type Interface struct {
	Name string `yaml:"-"`
	Link string `yaml:"link"`
}

// Link is a cabled connection between two or more device interfaces.
type Link struct {
	Name      string
	Endpoints []Endpoint
}

// Endpoint is one side of a link.
type Endpoint struct {
	Device    string
	Interface string
}

// Neighbor describes one expected adjacency derived from the topology.
type Neighbor struct {
	LocalInterface  string
	RemoteInterface string
}

// DeviceNames returns a sorted list of device names.
func (tb *Testbed) DeviceNames() []string {
	names := make([]string, 0, len(tb.Devices))
	for name := range tb.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasDevice returns true if the testbed contains a device with the given name.
func (tb *Testbed) HasDevice(name string) bool {
	_, ok := tb.Devices[name]
	return ok
}

// Links returns the topology links sorted by name.
func (tb *Testbed) Links() []*Link {
	names := make([]string, 0, len(tb.links))
	for name := range tb.links {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]*Link, 0, len(names))
	for _, name := range names {
		out = append(out, tb.links[name])
	}
	return out
}

// ExpectedNeighbors derives the expected adjacency map from the topology
// links: device name to neighbor device name to the interface pair. Devices
// sharing a link are expected to see each other as CDP neighbors on the
// linked interfaces.
func (tb *Testbed) ExpectedNeighbors() map[string]map[string]Neighbor {
	expected := make(map[string]map[string]Neighbor)
	for _, link := range tb.links {
		for _, a := range link.Endpoints {
			for _, z := range link.Endpoints {
				if a.Device == z.Device {
					continue
				}
				if expected[a.Device] == nil {
					expected[a.Device] = make(map[string]Neighbor)
				}
				expected[a.Device][z.Device] = Neighbor{
					LocalInterface:  a.Interface,
					RemoteInterface: z.Interface,
				}
			}
		}
	}
	return expected
}

// buildLinks groups device interfaces by link name.
func (tb *Testbed) buildLinks() {
	tb.links = make(map[string]*Link)
	for _, name := range tb.DeviceNames() {
		dev := tb.Devices[name]
		intfNames := make([]string, 0, len(dev.Interfaces))
		for intfName := range dev.Interfaces {
			intfNames = append(intfNames, intfName)
		}
		sort.Strings(intfNames)
		for _, intfName := range intfNames {
			intf := dev.Interfaces[intfName]
			if intf.Link == "" {
				continue
			}
			link := tb.links[intf.Link]
			if link == nil {
				link = &Link{Name: intf.Link}
				tb.links[intf.Link] = link
			}
			link.Endpoints = append(link.Endpoints, Endpoint{Device: name, Interface: intfName})
		}
	}
}
