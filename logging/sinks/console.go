package sinks

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"rush-and-ruin/server/logging"
)

// Console renders one human-readable line per event.
type Console struct {
	mu       sync.Mutex
	writer   io.Writer
	useColor bool
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = io.Discard
	}
	return &Console{writer: w}
}

func NewConsoleWithColor(w io.Writer, useColor bool) *Console {
	sink := NewConsole(w)
	sink.useColor = useColor
	return sink
}

func (s *Console) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var b strings.Builder
	fmt.Fprintf(&b, "%s tick=%d %s", event.Time.Format("15:04:05.000"), event.Tick, event.Type)
	if event.Actor.ID != "" {
		fmt.Fprintf(&b, " actor=%s", event.Actor.ID)
	}
	for _, target := range event.Targets {
		fmt.Fprintf(&b, " target=%s", target.ID)
	}
	if event.Payload != nil {
		fmt.Fprintf(&b, " payload=%+v", event.Payload)
	}
	for k, v := range event.Extra {
		fmt.Fprintf(&b, " %s=%v", k, v)
	}

	line := b.String()
	if s.useColor && event.Severity >= logging.SeverityWarn {
		line = "\x1b[33m" + line + "\x1b[0m"
	}
	_, err := fmt.Fprintln(s.writer, line)
	return err
}

func (s *Console) Close(context.Context) error {
	return nil
}
