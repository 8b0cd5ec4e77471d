package service

import "github.com/uripeled2/classroom-participation-app/internal/protocol"

// Sender delivers outbound events to individual connections (avoids
// import cycle with the WebSocket transport). Delivery is fire-and-forget:
// implementations never block on, or report, a failed recipient.
type Sender interface {
	Send(connID string, env *protocol.Envelope)
}
