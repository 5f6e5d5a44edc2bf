package testbed

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"syscall"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/netvalid/netvalid/pkg/util"
)

// knownOS is the set of OS values with a parser implementation.
var knownOS = map[string]bool{
	OSIOSXE: true,
	OSIOSXR: true,
	OSSONiC: true,
}

// testbedFile mirrors the on-disk YAML layout. The topology section keys
// device interfaces by device name.
type testbedFile struct {
	Testbed struct {
		Name string `yaml:"name"`
	} `yaml:"testbed"`
	Devices  map[string]*Device `yaml:"devices"`
	Topology map[string]struct {
		Interfaces map[string]*Interface `yaml:"interfaces"`
	} `yaml:"topology"`
}

// envRef matches %ENV{VAR} references in credential values.
var envRef = regexp.MustCompile(`%ENV\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// PromptPassword reads a password without echo from the controlling
// terminal. Overridable for tests.
var PromptPassword = func(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	b, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Load reads, resolves, and validates a testbed file. Malformed YAML and
// inconsistent topology definitions are configuration errors surfaced here,
// before any device is contacted.
func Load(path string) (*Testbed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading testbed: %w", err)
	}

	var tf testbedFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, util.NewConfigError(path, "testbed YAML", err.Error())
	}
	if len(tf.Devices) == 0 {
		return nil, util.NewConfigError(path, "devices", "no devices defined")
	}

	tb := &Testbed{
		Name:    tf.Testbed.Name,
		Devices: tf.Devices,
	}

	for name, dev := range tb.Devices {
		dev.Name = name
		dev.Interfaces = make(map[string]*Interface)
	}
	for name, topo := range tf.Topology {
		dev, ok := tb.Devices[name]
		if !ok {
			return nil, util.NewConfigError(path, "topology device "+name, "not present in devices section")
		}
		for intfName, intf := range topo.Interfaces {
			intf.Name = intfName
			dev.Interfaces[intfName] = intf
		}
	}
	tb.buildLinks()

	if err := tb.validate(path); err != nil {
		return nil, err
	}
	if err := tb.resolveCredentials(); err != nil {
		return nil, err
	}

	util.WithField("testbed", tb.Name).Debugf("loaded %d devices, %d links", len(tb.Devices), len(tb.links))
	return tb, nil
}

// validate checks structural consistency of the loaded testbed.
func (tb *Testbed) validate(path string) error {
	var vb util.ValidationBuilder

	for _, name := range tb.DeviceNames() {
		dev := tb.Devices[name]
		if !knownOS[dev.OS] {
			vb.AddErrorf("device %s: unknown os %q", name, dev.OS)
		}
		conn := dev.Conn()
		if conn == nil {
			vb.AddErrorf("device %s: no usable connection defined", name)
		} else if conn.Host == "" {
			vb.AddErrorf("device %s: connection has no host", name)
		}
		if dev.Credentials.Username == "" && dev.OS != OSSONiC {
			vb.AddErrorf("device %s: no username in credentials", name)
		}
	}

	for _, link := range tb.Links() {
		if len(link.Endpoints) < 2 {
			vb.AddErrorf("link %s: only one endpoint (%s:%s)", link.Name,
				link.Endpoints[0].Device, link.Endpoints[0].Interface)
		}
	}

	if vb.HasErrors() {
		err := vb.Build()
		return util.NewConfigError(path, "testbed", err.Error())
	}
	return nil
}

// Conn returns the device's primary connection: the redis connection for
// SONiC devices, the cli connection otherwise.
func (d *Device) Conn() *Connection {
	if d.OS == OSSONiC {
		if c, ok := d.Connections[ConnRedis]; ok {
			return c
		}
	}
	return d.Connections[ConnCLI]
}

// resolveCredentials expands %ENV{VAR} references and prompts for passwords
// left empty. Each distinct username is prompted at most once per load.
func (tb *Testbed) resolveCredentials() error {
	prompted := make(map[string]string)
	for _, name := range tb.DeviceNames() {
		dev := tb.Devices[name]
		if dev.OS == OSSONiC {
			continue
		}
		pw, err := expandEnv(dev.Credentials.Password)
		if err != nil {
			return util.NewConfigError(name, "credentials", err.Error())
		}
		if pw == "" {
			cached, ok := prompted[dev.Credentials.Username]
			if !ok {
				cached, err = PromptPassword(fmt.Sprintf("Password for %s: ", dev.Credentials.Username))
				if err != nil {
					return fmt.Errorf("reading password for %s: %w", name, err)
				}
				prompted[dev.Credentials.Username] = cached
			}
			pw = cached
		}
		dev.Credentials.Password = pw
	}
	return nil
}

// expandEnv replaces %ENV{VAR} references with environment values.
// An unset variable is an error rather than an empty expansion.
func expandEnv(s string) (string, error) {
	var missing string
	out := envRef.ReplaceAllStringFunc(s, func(ref string) string {
		name := envRef.FindStringSubmatch(ref)[1]
		val, ok := os.LookupEnv(name)
		if !ok {
			missing = name
		}
		return val
	})
	if missing != "" {
		return "", fmt.Errorf("environment variable %s not set", missing)
	}
	return strings.TrimSpace(out), nil
}
