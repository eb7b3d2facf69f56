package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/logging"
)

// fakeSender records dispatched requests and signals on each call so
// tests can wait for the fire-and-forget goroutines.
type fakeSender struct {
	mu       sync.Mutex
	commands []sentCommand
	scenes   []string
	err      error
	called   chan struct{}
}

type sentCommand struct {
	deviceID string
	command  string
	params   map[string]any
}

func newFakeSender() *fakeSender {
	return &fakeSender{called: make(chan struct{}, 16)}
}

func (f *fakeSender) SendCommand(_ context.Context, deviceID, command string, params map[string]any) error {
	f.mu.Lock()
	f.commands = append(f.commands, sentCommand{deviceID, command, params})
	f.mu.Unlock()
	f.called <- struct{}{}
	return f.err
}

func (f *fakeSender) ActivateScene(_ context.Context, sceneID string) error {
	f.mu.Lock()
	f.scenes = append(f.scenes, sceneID)
	f.mu.Unlock()
	f.called <- struct{}{}
	return f.err
}

func (f *fakeSender) wait(t *testing.T) {
	t.Helper()
	select {
	case <-f.called:
	case <-time.After(2 * time.Second):
		t.Fatal("dispatch goroutine never called the sender")
	}
}

// liveFlag is a scriptable LiveChecker.
type liveFlag bool

func (l liveFlag) IsLive() bool { return bool(l) }

func TestDispatcher_DeviceCommands(t *testing.T) {
	tests := []struct {
		name        string
		fire        func(d *Dispatcher) error
		wantCommand string
		wantParams  map[string]any
	}{
		{
			name:        "toggle",
			fire:        func(d *Dispatcher) error { return d.Toggle("light-1") },
			wantCommand: "toggle",
			wantParams:  nil,
		},
		{
			name:        "set level",
			fire:        func(d *Dispatcher) error { return d.SetLevel("light-1", 60) },
			wantCommand: "set_level",
			wantParams:  map[string]any{"level": 60},
		},
		{
			name:        "set position",
			fire:        func(d *Dispatcher) error { return d.SetPosition("light-1", 25) },
			wantCommand: "set_position",
			wantParams:  map[string]any{"position": 25},
		},
		{
			name:        "set setpoint",
			fire:        func(d *Dispatcher) error { return d.SetSetpoint("light-1", 21.5) },
			wantCommand: "set_setpoint",
			wantParams:  map[string]any{"setpoint": 21.5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := newFakeSender()
			d := NewDispatcher(sender, liveFlag(true), logging.Default())

			if err := tt.fire(d); err != nil {
				t.Fatalf("dispatch error: %v", err)
			}
			sender.wait(t)

			sender.mu.Lock()
			defer sender.mu.Unlock()
			if len(sender.commands) != 1 {
				t.Fatalf("sender saw %d commands, want 1", len(sender.commands))
			}
			got := sender.commands[0]
			if got.deviceID != "light-1" {
				t.Errorf("deviceID = %q, want light-1", got.deviceID)
			}
			if got.command != tt.wantCommand {
				t.Errorf("command = %q, want %q", got.command, tt.wantCommand)
			}
			for k, v := range tt.wantParams {
				if got.params[k] != v {
					t.Errorf("params[%s] = %v, want %v", k, got.params[k], v)
				}
			}
		})
	}
}

func TestDispatcher_ActivateScene(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, liveFlag(true), logging.Default())

	if err := d.ActivateScene("scene-movie"); err != nil {
		t.Fatalf("ActivateScene() error: %v", err)
	}
	sender.wait(t)

	sender.mu.Lock()
	defer sender.mu.Unlock()
	if len(sender.scenes) != 1 || sender.scenes[0] != "scene-movie" {
		t.Errorf("scenes = %v, want [scene-movie]", sender.scenes)
	}
}

func TestDispatcher_NotLiveSuppressesDispatch(t *testing.T) {
	sender := newFakeSender()
	d := NewDispatcher(sender, liveFlag(false), logging.Default())

	calls := []func() error{
		func() error { return d.Toggle("light-1") },
		func() error { return d.SetLevel("light-1", 10) },
		func() error { return d.SetPosition("light-1", 10) },
		func() error { return d.SetSetpoint("light-1", 20) },
		func() error { return d.ActivateScene("scene-1") },
	}
	for i, fire := range calls {
		if err := fire(); !errors.Is(err, ErrNotLive) {
			t.Errorf("call %d error = %v, want ErrNotLive", i, err)
		}
	}

	// Nothing must have reached the sender.
	select {
	case <-sender.called:
		t.Fatal("sender called despite not-live panel")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDispatcher_SenderFailureIsSwallowed(t *testing.T) {
	sender := newFakeSender()
	sender.err = errors.New("core rejected the command")
	d := NewDispatcher(sender, liveFlag(true), logging.Default())

	// Fire-and-forget: the caller still sees success.
	if err := d.Toggle("light-1"); err != nil {
		t.Fatalf("Toggle() error = %v, want nil despite sender failure", err)
	}
	sender.wait(t)
}
