// Package mqtt provides MQTT client connectivity for the Gray Logic panel.
//
// This package manages:
//   - Connection to the Mosquitto broker with auto-reconnect
//   - Topic subscriptions with wildcard support, restored on reconnect
//   - Panel presence publication with Last Will for crash detection
//   - Panic-safe message handler dispatch
//
// # Architecture
//
// The panel is a pure consumer of Core's canonical topics — it never
// publishes device state or commands over MQTT (commands go through the
// REST API). Its only publication is its own presence.
//
//	Gray Logic Core ──▶ MQTT Broker ──▶ Panel (device state, scene events)
//	Panel ──▶ MQTT Broker              (ui presence only)
//
// Reconnection is this client's responsibility: the paho library retries
// with exponential backoff, and tracked subscriptions are re-established
// on every reconnect. The ingress worker above this layer only observes
// connect/disconnect transitions.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT, "panel-kitchen")
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	err = client.Subscribe(mqtt.Topics{}.AllCoreDeviceStates(), 0,
//	    func(topic string, payload []byte) error {
//	        // decode and enqueue
//	        return nil
//	    })
package mqtt
