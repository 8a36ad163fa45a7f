package models

import (
	"context"
	"sync"
	"time"

	"github.com/allbin/go-dcserial"
	"github.com/allbin/go-dcserial/internal/tui/components"
	tea "github.com/charmbracelet/bubbletea"
)

// idleBackoff spaces out reads while the line is quiet.
const idleBackoff = 50 * time.Millisecond

type ConnectionStatusMsg struct {
	Connected bool
	Error     error
}

// Session owns an open port for the lifetime of a view. Once Start has run,
// only the reader goroutine touches the port.
type Session struct {
	port     *dcserial.Port
	readSize int

	ready   bool
	paused  bool
	results []components.ReadResultMsg

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
}

func NewSession(readSize int) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	return &Session{
		readSize: readSize,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start attaches the port and begins delivering every non-empty read
// through send. The loop ends on the first failed read or on Stop.
func (s *Session) Start(port *dcserial.Port, send func(tea.Msg)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.port = port
	s.done = make(chan struct{})
	go s.readLoop(send)
}

func (s *Session) readLoop(send func(tea.Msg)) {
	defer close(s.done)

	buf := make([]byte, s.readSize)
	for s.ctx.Err() == nil {
		n, err := s.port.Read(buf)
		if s.ctx.Err() != nil {
			return
		}
		if n == 0 && err == nil {
			select {
			case <-s.ctx.Done():
				return
			case <-time.After(idleBackoff):
			}
			continue
		}

		send(components.ReadResultMsg{
			Timestamp: time.Now(),
			Requested: len(buf),
			Data:      append([]byte(nil), buf[:n]...),
			Code:      dcserial.Code(n, err),
		})
		if err != nil {
			send(ConnectionStatusMsg{Connected: false, Error: err})
			return
		}
	}
}

// Stop cancels the reader and closes the port once the reader has let go of
// it. A reader still blocked in the driver after grace keeps the port; it is
// released with the process.
func (s *Session) Stop(grace time.Duration) error {
	s.cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}

	select {
	case <-s.done:
	case <-time.After(grace):
		return nil
	}

	err := s.port.Close()
	s.port = nil
	return err
}

func (s *Session) IsReady() bool {
	return s.ready
}

func (s *Session) SetReady(ready bool) {
	s.ready = ready
}

func (s *Session) IsPaused() bool {
	return s.paused
}

func (s *Session) TogglePause() bool {
	s.paused = !s.paused
	return s.paused
}

func (s *Session) Results() []components.ReadResultMsg {
	return s.results
}

func (s *Session) AddResult(msg components.ReadResultMsg) {
	s.results = append(s.results, msg)
}

func (s *Session) ClearResults() {
	s.results = nil
}
