package session

import "encoding/json"

// controlMessage is the minimal shape every inbound text frame is
// first parsed into, to dispatch on type before decoding the rest.
type controlMessage struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

func connectionEstablishedMessage(timestampMillis int64) []byte {
	return mustJSON(map[string]any{
		"type":      "connection_established",
		"timestamp": timestampMillis,
	})
}

func loadingStatusMessage() []byte {
	return mustJSON(map[string]any{
		"type":   "loading",
		"status": "loading",
	})
}

func pongMessage(timestampMillis int64) []byte {
	return mustJSON(map[string]any{
		"type":      "pong",
		"timestamp": timestampMillis,
	})
}

func updatesStartedMessage(timestampMillis int64) []byte {
	return mustJSON(map[string]any{
		"type":      "updatesStarted",
		"timestamp": timestampMillis,
	})
}

func errorMessage(message string) []byte {
	return mustJSON(map[string]any{
		"type":    "error",
		"message": message,
	})
}

// mustJSON marshals a fixed, hand-built map of JSON-safe values. It
// never fails for the call sites above, so a marshal error here would
// indicate a programmer mistake, not a runtime condition to recover
// from.
func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
