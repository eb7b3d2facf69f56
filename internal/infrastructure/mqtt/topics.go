package mqtt

import "fmt"

// Topic prefixes per the Gray Logic MQTT specification. The panel only
// consumes Core topics and publishes its own UI presence.
const (
	// TopicPrefixCore is the base for all Core topics.
	TopicPrefixCore = "graylogic/core"

	// TopicPrefixUI is the base for UI-specific topics.
	TopicPrefixUI = "graylogic/ui"
)

// Topics provides builders for the Gray Logic MQTT topics the panel uses.
// Using these helpers keeps topic naming consistent with Core.
//
//	topics := mqtt.Topics{}
//	filter := topics.AllCoreDeviceStates()
//	// Returns: "graylogic/core/device/+/state"
type Topics struct{}

// CoreDeviceState returns the canonical device state topic.
//
// Example: graylogic/core/device/light-living-main/state
func (Topics) CoreDeviceState(deviceID string) string {
	return fmt.Sprintf("%s/device/%s/state", TopicPrefixCore, deviceID)
}

// CoreSceneActivated returns the topic for scene activation events.
//
// Example: graylogic/core/scene/cinema-mode/activated
func (Topics) CoreSceneActivated(sceneID string) string {
	return fmt.Sprintf("%s/scene/%s/activated", TopicPrefixCore, sceneID)
}

// UIPresence returns the presence topic for a specific UI client.
//
// Example: graylogic/ui/panel-kitchen/presence
func (Topics) UIPresence(clientID string) string {
	return fmt.Sprintf("%s/%s/presence", TopicPrefixUI, clientID)
}

// AllCoreDeviceStates returns a pattern matching all canonical device states.
//
// Pattern: graylogic/core/device/+/state
func (Topics) AllCoreDeviceStates() string {
	return fmt.Sprintf("%s/device/+/state", TopicPrefixCore)
}

// AllCoreSceneActivations returns a pattern matching all scene activations.
//
// Pattern: graylogic/core/scene/+/activated
func (Topics) AllCoreSceneActivations() string {
	return fmt.Sprintf("%s/scene/+/activated", TopicPrefixCore)
}
