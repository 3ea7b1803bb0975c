package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
)

// Server exports a Controller on the session bus.
type Server struct {
	mu       sync.Mutex
	conn     *dbus.Conn
	logger   *slog.Logger
	ctrl     Controller
	dispatch Dispatcher
	running  bool
}

// NewServer creates a server for ctrl. Mutating calls are handed to
// dispatch and the method call returns once they have run. A nil dispatch
// calls the controller directly.
func NewServer(ctrl Controller, dispatch Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Server{
		logger:   logger,
		ctrl:     ctrl,
		dispatch: dispatch,
	}
}

// Start connects to the session bus, exports the object and claims BusName.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return fmt.Errorf("server already running")
	}

	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := s.export(conn); err != nil {
		conn.Close()
		return err
	}

	reply, err := conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		conn.Close()
		return fmt.Errorf("bus name %s already taken", BusName)
	}

	s.conn = conn
	s.running = true
	s.logger.Info("D-Bus control service started", "name", BusName, "path", Path)
	return nil
}

func (s *Server) export(conn *dbus.Conn) error {
	if err := conn.Export(s, Path, Interface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}
	if err := conn.Export(introspect.NewIntrospectable(introspectNode()), Path,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("failed to export introspectable: %w", err)
	}
	return nil
}

// Stop releases the bus name and closes the private connection.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	err := s.conn.Close()
	s.conn = nil
	s.logger.Info("D-Bus control service stopped")
	return err
}

// EmitTextChanged broadcasts the TextChanged signal. It is a no-op when the
// server is not running.
func (s *Server) EmitTextChanged(index int, text string) error {
	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil
	}

	if err := conn.Emit(Path, SignalTextChanged, uint32(index), text); err != nil {
		return fmt.Errorf("failed to emit TextChanged signal: %w", err)
	}
	s.logger.Debug("emitted TextChanged signal", "index", index)
	return nil
}

// Next advances the widget.
// D-Bus method: Next()
func (s *Server) Next() *dbus.Error {
	s.logger.Debug("Next called")
	s.run(s.ctrl.ShowNext)
	return nil
}

// Previous steps the widget back.
// D-Bus method: Previous()
func (s *Server) Previous() *dbus.Error {
	s.logger.Debug("Previous called")
	s.run(s.ctrl.ShowPrevious)
	return nil
}

// Current returns the displayed line.
// D-Bus method: Current() -> (uus)
func (s *Server) Current() (uint32, uint32, string, *dbus.Error) {
	return uint32(s.ctrl.Index()), uint32(s.ctrl.Len()), s.ctrl.Current(), nil
}

// NextRotation returns the unix time of the next automatic change, or 0.
// D-Bus method: NextRotation() -> x
func (s *Server) NextRotation() (int64, *dbus.Error) {
	return unixOrZero(s.ctrl.NextRotation()), nil
}

// run hands fn to the dispatcher and waits for it.
func (s *Server) run(fn func()) {
	done := make(chan struct{})
	s.dispatch(func() {
		defer close(done)
		fn()
	})
	<-done
}

func introspectNode() *introspect.Node {
	return &introspect.Node{
		Name: string(Path),
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name: Interface,
				Methods: []introspect.Method{
					{Name: "Next"},
					{Name: "Previous"},
					{
						Name: "Current",
						Args: []introspect.Arg{
							{Name: "index", Type: "u", Direction: "out"},
							{Name: "count", Type: "u", Direction: "out"},
							{Name: "text", Type: "s", Direction: "out"},
						},
					},
					{
						Name: "NextRotation",
						Args: []introspect.Arg{
							{Name: "unix", Type: "x", Direction: "out"},
						},
					},
				},
				Signals: []introspect.Signal{
					{
						Name: "TextChanged",
						Args: []introspect.Arg{
							{Name: "index", Type: "u"},
							{Name: "text", Type: "s"},
						},
					},
				},
			},
		},
	}
}
