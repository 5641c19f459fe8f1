package service

// Broadcaster pushes generation-progress events to connected admin clients
// (interface here to avoid an import cycle with the ws package).
type Broadcaster interface {
	Broadcast(msgType string, payload interface{})
}
