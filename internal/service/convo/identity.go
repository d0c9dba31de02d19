package convo

import "strings"

// UnknownUserKey is the sentinel session key for messages that arrive
// without a usable sender identifier. Every inbound message must resolve
// to some session.
const UnknownUserKey = "unknown"

// NormalizeUserKey turns the channel's sender field into a stable session
// key, e.g. Twilio's "whatsapp:+9715..." becomes "+9715...".
func NormalizeUserKey(raw string) string {
	key := strings.TrimSpace(raw)
	key = strings.TrimPrefix(key, "whatsapp:")
	key = strings.TrimSpace(key)
	if key == "" {
		return UnknownUserKey
	}
	return key
}
