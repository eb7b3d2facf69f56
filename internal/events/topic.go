package events

import "strings"

// Topic patterns for the two panel subscriptions. These are bit-exact
// Gray Logic Core topics:
//
//	graylogic/core/device/{device_id}/state
//	graylogic/core/scene/{scene_id}/activated
const (
	DeviceTopicPrefix = "graylogic/core/device/"
	DeviceTopicSuffix = "/state"

	SceneTopicPrefix = "graylogic/core/scene/"
	SceneTopicSuffix = "/activated"
)

// MaxIDLength bounds the identifier segment extracted from a topic.
// Matches the fixed identifier buffers used throughout the panel.
const MaxIDLength = 47

// DecodeTopic extracts the identifier segment between a fixed prefix and
// a fixed suffix. Pure function, no side effects.
//
// It succeeds only if the topic starts with the exact prefix, the exact
// suffix appears after it, and the identifier in between is non-empty and
// no longer than MaxIDLength. On failure it returns ("", false) and the
// caller ignores the message.
func DecodeTopic(topic, prefix, suffix string) (string, bool) {
	if !strings.HasPrefix(topic, prefix) {
		return "", false
	}
	rest := topic[len(prefix):]
	end := strings.Index(rest, suffix)
	if end <= 0 || end > MaxIDLength {
		return "", false
	}
	return rest[:end], true
}

// DecodeDeviceTopic extracts the device id from a device state topic.
func DecodeDeviceTopic(topic string) (string, bool) {
	return DecodeTopic(topic, DeviceTopicPrefix, DeviceTopicSuffix)
}

// DecodeSceneTopic extracts the scene id from a scene activation topic.
func DecodeSceneTopic(topic string) (string, bool) {
	return DecodeTopic(topic, SceneTopicPrefix, SceneTopicSuffix)
}
