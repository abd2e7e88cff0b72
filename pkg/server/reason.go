package server

import "github.com/mgrech/vitamine/pkg/chat"

// disconnectReasonJSON wraps reason as the JSON chat object disconnect
// packets carry.
func disconnectReasonJSON(reason string) string {
	return chat.Text(reason).String()
}
