// Package observer implements the topic-indexed subscriber registries and
// their diff-driven fan-out. Ids are unique per session across every
// topic; Unregister sweeps all topic maps rather than requiring the
// caller to name one, matching the vendor library's unregisterCallback.
package observer

import "sync"

// ID is the opaque handle Register returns and Unregister consumes.
type ID uint32

// Registry holds, per topic, the set of callbacks registered against it.
// A zero Registry is not usable; use New.
type Registry struct {
	mu      sync.Mutex
	nextID  ID
	byTopic map[string]map[ID]func(any)
}

// New builds an empty Registry.
func New() *Registry {
	return &Registry{byTopic: make(map[string]map[ID]func(any))}
}

// Register adds callback under topic and returns its id. callback
// receives whatever value the topic's fan-out supplies (the session
// controller's public Register wrappers supply the concrete type).
func (r *Registry) Register(topic string, callback func(any)) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	if r.byTopic[topic] == nil {
		r.byTopic[topic] = make(map[ID]func(any))
	}
	r.byTopic[topic][id] = callback
	return id
}

// Unregister removes id from whichever topic holds it. A id that is not
// registered anywhere is a no-op.
func (r *Registry) Unregister(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, subs := range r.byTopic {
		delete(subs, id)
	}
}

// Fire invokes every callback registered under topic with value, in
// insertion order is not guaranteed (map iteration), but stable across a
// single Fire call's duration — the registry lock is held for the
// duration of the topic's iteration, and released before the next topic
// (or the next Fire call) so callbacks must not re-enter the registry or
// session synchronously.
func (r *Registry) Fire(topic string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, cb := range r.byTopic[topic] {
		cb(value)
	}
}

// FireTopics invokes Fire for every topic in topics (in the given order)
// whose changed predicate reports true, passing valueFor(topic) as the
// callback argument.
func FireTopics(r *Registry, topics []string, changed func(topic string) bool, valueFor func(topic string) any) {
	for _, topic := range topics {
		if changed(topic) {
			r.Fire(topic, valueFor(topic))
		}
	}
}
