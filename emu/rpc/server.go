package rpc

import (
	"errors"
	"net"
	"net/http"
	"net/rpc"

	"famicore/emu/debugger"
)

type Emu interface {
	Reset()
	Restart()
	Stop()
}

var errNoDebugger = errors.New("debugger not attached")

type emuProxy struct {
	emu Emu
	dbg *debugger.Debugger
}

func (ep *emuProxy) Reset(_, _ *struct{}) error {
	if ep.dbg != nil {
		ep.dbg.ResetStack()
	}
	ep.emu.Reset()
	return nil
}

func (ep *emuProxy) Restart(_, _ *struct{}) error {
	if ep.dbg != nil {
		ep.dbg.ResetStack()
	}
	ep.emu.Restart()
	return nil
}

// Stop resumes a paused CPU, otherwise the emulator loop wouldn't see the
// request.
func (ep *emuProxy) Stop(_, _ *struct{}) error {
	if ep.dbg != nil {
		ep.dbg.Detach()
	}
	ep.emu.Stop()
	return nil
}

func (ep *emuProxy) SetPause(pause bool, _ *struct{}) error {
	if ep.dbg == nil {
		return errNoDebugger
	}
	if pause {
		ep.dbg.Pause()
	} else {
		ep.dbg.Continue()
	}
	return nil
}

func (ep *emuProxy) Step(_, _ *struct{}) error {
	if ep.dbg == nil {
		return errNoDebugger
	}
	ep.dbg.Step()
	return nil
}

func (ep *emuProxy) SetBreakpoint(bp Breakpoint, _ *struct{}) error {
	if ep.dbg == nil {
		return errNoDebugger
	}
	ep.dbg.SetBreakpoint(bp.Addr, bp.Set)
	return nil
}

func (ep *emuProxy) State(_ *struct{}, reply *debugger.State) error {
	if ep.dbg == nil {
		return errNoDebugger
	}
	*reply = ep.dbg.State()
	return nil
}

func (ep *emuProxy) IsReady(_ *struct{}, reply *bool) error {
	*reply = true
	return nil
}

type Server struct {
	l net.Listener
}

// NewServer starts serving emu, and dbg if not nil, on addr.
func NewServer(addr string, emu Emu, dbg *debugger.Debugger) (*Server, error) {
	srv := rpc.NewServer()
	if err := srv.RegisterName("emu", &emuProxy{emu: emu, dbg: dbg}); err != nil {
		return nil, err
	}
	mux := http.NewServeMux()
	mux.Handle(rpc.DefaultRPCPath, srv)

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	modRPC.InfoZ("rpc server listening").String("addr", l.Addr().String()).End()
	go http.Serve(l, mux)
	return &Server{l: l}, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string { return s.l.Addr().String() }

func (s *Server) Close() error { return s.l.Close() }
