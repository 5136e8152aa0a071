package gates

import (
	"sync"
)

// ActivationHub keeps an obstacle running while players stand on it or
// while any waiting agent asks for it.
type ActivationHub struct {
	mu         sync.Mutex
	activator  Activator
	requesters map[interface{}]struct{}
	presence   int
}

// NewActivationHub drives activator, which may be nil
func NewActivationHub(activator Activator) *ActivationHub {
	return &ActivationHub{
		activator:  activator,
		requesters: make(map[interface{}]struct{}),
	}
}

// AddUser increments the presence counter
func (h *ActivationHub) AddUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.presence++
	h.updateActive()
}

// RemoveUser decrements the presence counter, never below zero
func (h *ActivationHub) RemoveUser() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.presence > 0 {
		h.presence--
	}
	h.updateActive()
}

// RequestOpen adds or removes requester. The activator is only touched when
// the requester set actually changed.
func (h *ActivationHub) RequestOpen(requester interface{}, on bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, had := h.requesters[requester]
	if on == had {
		return
	}
	if on {
		h.requesters[requester] = struct{}{}
	} else {
		delete(h.requesters, requester)
	}
	h.updateActive()
}

// Requesters currently asking for the obstacle
func (h *ActivationHub) Requesters() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.requesters)
}

func (h *ActivationHub) updateActive() {
	if h.activator == nil {
		return
	}
	active := h.presence > 0 || len(h.requesters) > 0
	if h.activator.IsActive() != active {
		h.activator.SetActive(active)
	}
}
