// Package session provides the SSH exec transport used to run show commands
// on CLI-managed devices. One connection per device per run, no retries: a
// dial failure is a fatal per-device error surfaced by the runner.
package session

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/ssh"

	"github.com/netvalid/netvalid/pkg/testbed"
	"github.com/netvalid/netvalid/pkg/util"
)

// DialTimeout bounds the TCP+SSH handshake.
var DialTimeout = 10 * time.Second

var sshDial = func(network, addr string, config *ssh.ClientConfig) (*ssh.Client, error) {
	return ssh.Dial(network, addr, config)
}

// Client wraps an SSH connection to one device.
type Client struct {
	device string
	addr   string
	conn   *ssh.Client
}

// Dial opens an SSH connection to the device's cli connection endpoint.
func Dial(ctx context.Context, dev *testbed.Device) (*Client, error) {
	conn, ok := dev.Connections[testbed.ConnCLI]
	if !ok {
		return nil, util.NewConfigError(dev.Name, "connections", "no cli connection defined")
	}

	config := &ssh.ClientConfig{
		User: dev.Credentials.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(dev.Credentials.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         DialTimeout,
	}

	addr := conn.Addr()
	util.WithDevice(dev.Name).Debugf("dialing ssh %s", addr)

	type dialResult struct {
		client *ssh.Client
		err    error
	}
	ch := make(chan dialResult, 1)
	go func() {
		c, err := sshDial("tcp", addr, config)
		ch <- dialResult{c, err}
	}()

	select {
	case <-ctx.Done():
		// The dial may still succeed after cancellation; close the
		// orphaned connection instead of leaking it.
		go func() {
			if res := <-ch; res.client != nil {
				res.client.Close()
			}
		}()
		return nil, &util.ConnectError{Device: dev.Name, Addr: addr, Err: ctx.Err()}
	case res := <-ch:
		if res.err != nil {
			return nil, &util.ConnectError{Device: dev.Name, Addr: addr, Err: res.err}
		}
		return &Client{device: dev.Name, addr: addr, conn: res.client}, nil
	}
}

// Device returns the device name this client is connected to.
func (c *Client) Device() string {
	return c.device
}

// Run executes a single command and returns its combined output. Each
// command runs in a fresh SSH session so device CLIs that exit after one
// exec command behave consistently.
func (c *Client) Run(ctx context.Context, cmd string) (string, error) {
	session, err := c.conn.NewSession()
	if err != nil {
		return "", fmt.Errorf("ssh session on %s: %w", c.device, err)
	}
	defer session.Close()

	type execResult struct {
		output []byte
		err    error
	}
	ch := make(chan execResult, 1)
	go func() {
		out, err := session.CombinedOutput(cmd)
		ch <- execResult{out, err}
	}()

	select {
	case <-ctx.Done():
		// Closing the session unblocks CombinedOutput on the next read.
		session.Close()
		return "", fmt.Errorf("running %q on %s: %w", cmd, c.device, ctx.Err())
	case res := <-ch:
		if res.err != nil {
			return string(res.output), fmt.Errorf("running %q on %s: %w", cmd, c.device, res.err)
		}
		return string(res.output), nil
	}
}

// Close terminates the SSH connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
