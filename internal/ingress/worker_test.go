package ingress

import (
	"errors"
	"testing"

	"github.com/nerrad567/gray-logic-panel/internal/events"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/mqtt"
)

// fakeBroker implements the broker interface and records subscriptions
// so tests can inject messages without a real MQTT connection.
type fakeBroker struct {
	handlers     map[string]mqtt.MessageHandler
	subscribeErr error
	closed       bool
}

func newFakeBroker() *fakeBroker {
	return &fakeBroker{handlers: make(map[string]mqtt.MessageHandler)}
}

func (f *fakeBroker) Subscribe(topic string, _ byte, handler mqtt.MessageHandler) error {
	if f.subscribeErr != nil {
		return f.subscribeErr
	}
	f.handlers[topic] = handler
	return nil
}

func (f *fakeBroker) SetOnConnect(func())             {}
func (f *fakeBroker) SetOnDisconnect(func(err error)) {}
func (f *fakeBroker) SetLogger(mqtt.Logger)           {}
func (f *fakeBroker) IsConnected() bool               { return !f.closed }

func (f *fakeBroker) Close() error {
	f.closed = true
	return nil
}

// inject delivers a message to the handler registered for the filter.
func (f *fakeBroker) inject(t *testing.T, filter, topic string, payload []byte) {
	t.Helper()
	handler, ok := f.handlers[filter]
	if !ok {
		t.Fatalf("no handler registered for filter %q", filter)
	}
	if err := handler(topic, payload); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
}

func newTestWorker(fake *fakeBroker) (*Worker, *events.Queue[events.StateUpdate], *events.Queue[events.SceneEvent]) {
	states := events.NewQueue[events.StateUpdate](events.DefaultStateQueueSize)
	scenes := events.NewQueue[events.SceneEvent](events.DefaultSceneQueueSize)

	w := NewWorker(config.MQTTConfig{}, "test-panel", states, scenes, logging.Default())
	w.connect = func() (broker, error) { return fake, nil }
	return w, states, scenes
}

func TestWorker_StartSubscribesBothFilters(t *testing.T) {
	fake := newFakeBroker()
	w, _, _ := newTestWorker(fake)

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	topics := mqtt.Topics{}
	if _, ok := fake.handlers[topics.AllCoreDeviceStates()]; !ok {
		t.Error("device state filter not subscribed")
	}
	if _, ok := fake.handlers[topics.AllCoreSceneActivations()]; !ok {
		t.Error("scene activation filter not subscribed")
	}
	if !w.Connected() {
		t.Error("Connected() = false after successful Start")
	}
}

func TestWorker_StartTwiceIsNoOp(t *testing.T) {
	fake := newFakeBroker()
	w, _, _ := newTestWorker(fake)

	if err := w.Start(); err != nil {
		t.Fatalf("first Start() error: %v", err)
	}
	defer w.Stop()

	connectCalls := 0
	w.connect = func() (broker, error) {
		connectCalls++
		return fake, nil
	}
	if err := w.Start(); err != nil {
		t.Fatalf("second Start() error: %v", err)
	}
	if connectCalls != 0 {
		t.Error("second Start reconnected")
	}
}

func TestWorker_StartConnectFailure(t *testing.T) {
	w, _, _ := newTestWorker(nil)
	w.connect = func() (broker, error) {
		return nil, errors.New("broker unreachable")
	}

	if err := w.Start(); err == nil {
		t.Fatal("Start() succeeded despite connect failure")
	}
	if w.Connected() {
		t.Error("Connected() = true after failed Start")
	}
}

func TestWorker_StartSubscribeFailureClosesConnection(t *testing.T) {
	fake := newFakeBroker()
	fake.subscribeErr = errors.New("subscribe rejected")
	w, _, _ := newTestWorker(fake)

	if err := w.Start(); err == nil {
		t.Fatal("Start() succeeded despite subscribe failure")
	}
	if !fake.closed {
		t.Error("connection not closed after subscribe failure")
	}
	if w.Connected() {
		t.Error("Connected() = true after failed Start")
	}
}

func TestWorker_StopIdempotent(t *testing.T) {
	fake := newFakeBroker()
	w, _, _ := newTestWorker(fake)

	// Never started: must not panic.
	w.Stop()

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	w.Stop()
	w.Stop()

	if !fake.closed {
		t.Error("broker not closed by Stop")
	}
	if w.Connected() {
		t.Error("Connected() = true after Stop")
	}
}

func TestWorker_DeviceStateFlowsToQueue(t *testing.T) {
	fake := newFakeBroker()
	w, states, _ := newTestWorker(fake)

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	filter := mqtt.Topics{}.AllCoreDeviceStates()
	fake.inject(t, filter, "graylogic/core/device/light-1/state", []byte(`{"on": true, "level": 60}`))

	update, ok := states.TryRecv()
	if !ok {
		t.Fatal("no state update enqueued")
	}
	if update.DeviceID != "light-1" {
		t.Errorf("DeviceID = %q, want light-1", update.DeviceID)
	}
	if update.Level == nil || *update.Level != 60 {
		t.Error("Level not carried through")
	}
}

func TestWorker_DropsUndecodableMessages(t *testing.T) {
	fake := newFakeBroker()
	w, states, scenes := newTestWorker(fake)

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	stateFilter := mqtt.Topics{}.AllCoreDeviceStates()
	sceneFilter := mqtt.Topics{}.AllCoreSceneActivations()

	// Undecodable topic: id segment empty.
	fake.inject(t, stateFilter, "graylogic/core/device//state", []byte(`{"on": true}`))
	// Malformed payload on a good topic.
	fake.inject(t, stateFilter, "graylogic/core/device/light-1/state", []byte(`not json`))
	// Scene topic that fails the decode.
	fake.inject(t, sceneFilter, "graylogic/core/scene//activated", []byte(`{}`))

	if n := states.Len(); n != 0 {
		t.Errorf("state queue has %d entries, want 0", n)
	}
	if n := scenes.Len(); n != 0 {
		t.Errorf("scene queue has %d entries, want 0", n)
	}
}

func TestWorker_SceneActivationFlowsToQueue(t *testing.T) {
	fake := newFakeBroker()
	w, _, scenes := newTestWorker(fake)

	if err := w.Start(); err != nil {
		t.Fatalf("Start() error: %v", err)
	}
	defer w.Stop()

	filter := mqtt.Topics{}.AllCoreSceneActivations()
	fake.inject(t, filter, "graylogic/core/scene/scene-movie/activated", []byte(`{"room_id": "room-1"}`))

	event, ok := scenes.TryRecv()
	if !ok {
		t.Fatal("no scene event enqueued")
	}
	if event.SceneID != "scene-movie" {
		t.Errorf("SceneID = %q, want scene-movie", event.SceneID)
	}
	if event.RoomID != "room-1" {
		t.Errorf("RoomID = %q, want room-1", event.RoomID)
	}
}
