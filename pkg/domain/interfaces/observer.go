package interfaces

import "time"

// RenderObserver receives one observation per render pass
type RenderObserver interface {
	ObserveRender(format string, elapsed time.Duration, err error)
}

// RequestObserver receives one observation per served HTTP request
type RequestObserver interface {
	ObserveRequest(route string, code int)
}
