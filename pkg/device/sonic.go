// Package device provides direct state access for SONiC devices. SONiC
// exposes operational state through Redis (STATE_DB, DB 6) rather than a
// screen-scraped CLI, so its validator path reads Redis tables instead of
// parsing show output.
package device

import (
	"context"
	"strconv"

	"github.com/go-redis/redis/v8"

	"github.com/netvalid/netvalid/pkg/parser"
	"github.com/netvalid/netvalid/pkg/testbed"
	"github.com/netvalid/netvalid/pkg/util"
)

const stateDBNum = 6

// SonicOps implements parser.Ops for SONiC devices over STATE_DB. Only the
// state SONiC actually models is supported; the rest return
// util.ErrNotSupported so validators skip those checks.
type SonicOps struct {
	device string
	client *redis.Client
}

var _ parser.Ops = (*SonicOps)(nil)

// NewSonicOps creates a STATE_DB client for the device's redis connection.
func NewSonicOps(dev *testbed.Device) (*SonicOps, error) {
	conn, ok := dev.Connections[testbed.ConnRedis]
	if !ok {
		return nil, util.NewConfigError(dev.Name, "connections", "no redis connection defined")
	}
	return &SonicOps{
		device: dev.Name,
		client: redis.NewClient(&redis.Options{
			Addr: conn.Addr(),
			DB:   stateDBNum,
		}),
	}, nil
}

// Connect tests the connection.
func (o *SonicOps) Connect(ctx context.Context) error {
	if err := o.client.Ping(ctx).Err(); err != nil {
		return &util.ConnectError{Device: o.device, Addr: o.client.Options().Addr, Err: err}
	}
	return nil
}

// Close closes the connection.
func (o *SonicOps) Close() error {
	return o.client.Close()
}

// BGPNeighbors reads BGP_NEIGHBOR_TABLE from STATE_DB.
func (o *SonicOps) BGPNeighbors(ctx context.Context) ([]parser.BGPNeighbor, error) {
	keys, err := scanKeys(ctx, o.client, "BGP_NEIGHBOR_TABLE|*", 100)
	if err != nil {
		return nil, err
	}

	var neighbors []parser.BGPNeighbor
	for _, key := range keys {
		vals, err := o.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		ip := key[len("BGP_NEIGHBOR_TABLE|"):]
		nbr := parser.BGPNeighbor{
			IP:       ip,
			RemoteAS: vals["remote_asn"],
			State:    vals["state"],
			UpDown:   vals["uptime"],
		}
		if pfx, err := strconv.Atoi(vals["prefixes_received"]); err == nil {
			nbr.PfxRcvd = pfx
		}
		neighbors = append(neighbors, nbr)
	}
	return neighbors, nil
}

func (o *SonicOps) OSPFNeighbors(ctx context.Context) ([]parser.OSPFNeighbor, error) {
	return nil, util.ErrNotSupported
}

func (o *SonicOps) LDPNeighbors(ctx context.Context) ([]parser.LDPNeighbor, error) {
	return nil, util.ErrNotSupported
}

func (o *SonicOps) MPLSInterfaces(ctx context.Context) ([]parser.MPLSInterface, error) {
	return nil, util.ErrNotSupported
}

func (o *SonicOps) MPLSForwarding(ctx context.Context) ([]parser.MPLSForwardingEntry, error) {
	return nil, util.ErrNotSupported
}

func (o *SonicOps) TETunnels(ctx context.Context) ([]parser.TETunnel, error) {
	return nil, util.ErrNotSupported
}

func (o *SonicOps) CDPNeighbors(ctx context.Context) ([]parser.CDPNeighbor, error) {
	return nil, util.ErrNotSupported
}

func (o *SonicOps) AAA(ctx context.Context) (*parser.AAAState, error) {
	return nil, util.ErrNotSupported
}

// scanKeys iterates Redis keys matching the given pattern using cursor-based
// SCAN instead of the blocking O(N) KEYS command. The count hint controls
// how many keys Redis returns per iteration (not an exact limit).
func scanKeys(ctx context.Context, client *redis.Client, pattern string, countHint int64) ([]string, error) {
	var cursor uint64
	var keys []string
	for {
		batch, nextCursor, err := client.Scan(ctx, cursor, pattern, countHint).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	return keys, nil
}
