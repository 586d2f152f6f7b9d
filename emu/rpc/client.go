package rpc

import (
	"fmt"
	"net/rpc"
	"time"

	"famicore/emu/debugger"
)

type Client struct {
	client *rpc.Client
}

// NewClient connects to the server at addr, retrying for a short while.
func NewClient(addr string) (*Client, error) {
	var (
		client *rpc.Client
		err    error
	)
	const maxretries = 5
	for i := range maxretries {
		if client, err = rpc.DialHTTP("tcp", addr); err == nil {
			break
		}
		modRPC.WarnZ("dial tcp failed").Error("err", err).Int("retry", i).End()
		time.Sleep(250 * time.Millisecond)
	}

	if client == nil {
		return nil, fmt.Errorf("dial failed max retries: %v", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() error {
	modRPC.DebugZ("closing rpc client").End()
	return c.client.Close()
}

func (c *Client) Reset() error              { return call(c.client, "emu.Reset", nil) }
func (c *Client) Restart() error            { return call(c.client, "emu.Restart", nil) }
func (c *Client) Stop() error               { return call(c.client, "emu.Stop", nil) }
func (c *Client) SetPause(pause bool) error { return call(c.client, "emu.SetPause", pause) }
func (c *Client) Step() error               { return call(c.client, "emu.Step", nil) }

func (c *Client) SetBreakpoint(addr uint16, set bool) error {
	return call(c.client, "emu.SetBreakpoint", Breakpoint{Addr: addr, Set: set})
}

func (c *Client) State() (debugger.State, error) {
	return request[debugger.State](c.client, "emu.State", nil)
}

func call(client *rpc.Client, funcname string, args any) error {
	_, err := request[struct{}](client, funcname, args)
	return err
}

func request[T any](client *rpc.Client, funcname string, args any) (T, error) {
	if args == nil {
		args = &struct{}{}
	}
	var reply T
	if err := client.Call(funcname, args, &reply); err != nil {
		modRPC.ErrorZ("RPC call failed").String("func", funcname).Error("err", err).End()
		return reply, fmt.Errorf("%s: %w", funcname, err)
	}
	return reply, nil
}
