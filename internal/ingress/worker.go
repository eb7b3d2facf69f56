package ingress

import (
	"sync"

	"github.com/nerrad567/gray-logic-panel/internal/events"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/config"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/logging"
	"github.com/nerrad567/gray-logic-panel/internal/infrastructure/mqtt"
)

// broker is the slice of the MQTT client the worker depends on.
// Narrowed to an interface so tests can run without a real broker.
type broker interface {
	Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error
	SetOnConnect(func())
	SetOnDisconnect(func(err error))
	SetLogger(mqtt.Logger)
	IsConnected() bool
	Close() error
}

// Worker owns the broker connection lifecycle and the receive loop. The
// paho client runs the network loop on its own goroutines; the worker's
// message handlers only decode and enqueue — they never touch the room
// store.
//
// Connection loss flips the internal connected flag; reconnection is the
// broker client's own policy (exponential backoff, subscriptions
// restored automatically). The worker neither retries nor falls back.
type Worker struct {
	cfg      config.MQTTConfig
	clientID string
	states   *events.Queue[events.StateUpdate]
	scenes   *events.Queue[events.SceneEvent]
	log      *logging.Logger

	mu        sync.Mutex
	client    broker
	connected bool

	// connect is swappable for tests; defaults to the real MQTT client.
	connect func() (broker, error)
}

// NewWorker creates an ingress worker that feeds the given queues.
// Start must be called before any events flow.
func NewWorker(cfg config.MQTTConfig, clientID string,
	states *events.Queue[events.StateUpdate],
	scenes *events.Queue[events.SceneEvent],
	log *logging.Logger,
) *Worker {
	w := &Worker{
		cfg:      cfg,
		clientID: clientID,
		states:   states,
		scenes:   scenes,
		log:      log.With("component", "ingress"),
	}
	w.connect = func() (broker, error) {
		return mqtt.Connect(w.cfg, w.clientID)
	}
	return w
}

// Start connects to the broker and subscribes to the two panel topic
// filters: device state and scene activation wildcards.
//
// On failure nothing is left running — the caller may continue in
// REST-only mode. Calling Start on an already started worker is a no-op.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.client != nil {
		return nil
	}

	client, err := w.connect()
	if err != nil {
		return err
	}

	client.SetLogger(w.log)
	client.SetOnConnect(func() {
		w.setConnected(true)
		w.log.Info("broker connected")
	})
	client.SetOnDisconnect(func(err error) {
		w.setConnected(false)
		w.log.Warn("broker connection lost", "error", err)
	})

	qos := byte(w.cfg.QoS)
	topics := mqtt.Topics{}

	if err := client.Subscribe(topics.AllCoreDeviceStates(), qos, w.handleDeviceState); err != nil {
		client.Close()
		return err
	}
	if err := client.Subscribe(topics.AllCoreSceneActivations(), qos, w.handleSceneActivation); err != nil {
		client.Close()
		return err
	}

	w.client = client
	w.connected = true
	w.log.Info("ingress started",
		"state_filter", topics.AllCoreDeviceStates(),
		"scene_filter", topics.AllCoreSceneActivations(),
	)
	return nil
}

// Stop disconnects from the broker and releases the connection.
// Idempotent: safe to call on a never-started or already-stopped worker.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.client == nil {
		return
	}
	if err := w.client.Close(); err != nil {
		w.log.Error("error closing broker connection", "error", err)
	}
	w.client = nil
	w.connected = false
}

// Connected reports whether the worker currently has a broker connection.
func (w *Worker) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.client != nil && w.connected
}

func (w *Worker) setConnected(connected bool) {
	w.mu.Lock()
	w.connected = connected
	w.mu.Unlock()
}

// handleDeviceState processes one inbound device state message.
// Undecodable topics and malformed payloads are dropped without
// propagating an error — "no event produced" is the only outcome the
// rest of the pipeline ever sees.
func (w *Worker) handleDeviceState(topic string, payload []byte) error {
	deviceID, ok := events.DecodeDeviceTopic(topic)
	if !ok {
		return nil
	}

	update, err := decodeStateUpdate(deviceID, payload)
	if err != nil {
		w.log.Debug("dropping malformed state payload", "topic", topic, "error", err)
		return nil
	}

	w.states.TrySend(update)
	return nil
}

// handleSceneActivation processes one inbound scene activation message.
func (w *Worker) handleSceneActivation(topic string, payload []byte) error {
	sceneID, ok := events.DecodeSceneTopic(topic)
	if !ok {
		return nil
	}

	// The room id is optional; a malformed payload still yields a valid
	// scene event, scene id comes from the topic alone.
	event := decodeSceneEvent(sceneID, payload)
	w.scenes.TrySend(event)
	return nil
}
