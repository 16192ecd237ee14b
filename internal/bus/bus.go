// Package bus is the in-process change-notification channel. Mutating
// operations publish an event naming the entity that changed; interested
// readers re-load the relevant store key when they receive it. Delivery is
// synchronous, fire-and-forget, and scoped to this process only; a second
// process sharing the same store sees nothing until it reloads on its own.
package bus

import "sync"

const (
	TopicSlotsUpdated    = "slots-updated"
	TopicDoctorsUpdated  = "doctors-updated"
	TopicPatientsUpdated = "patients-updated"
	TopicVisitsUpdated   = "visits-updated"
)

// Event carries the topic plus whichever entity ids apply to it.
type Event struct {
	Topic     string
	DoctorID  string
	PatientID string
	VisitID   string
}

type Handler func(Event)

type Bus struct {
	mu   sync.RWMutex
	subs map[string][]Handler
}

func New() *Bus {
	return &Bus{subs: make(map[string][]Handler)}
}

// Subscribe registers h for every event published on topic. There is no
// unsubscribe; subscribers live as long as the bus.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	b.subs[topic] = append(b.subs[topic], h)
	b.mu.Unlock()
}

// Publish fans ev out to every subscriber of its topic, in registration
// order, on the caller's goroutine. Handlers that need to do real work
// should hand off to their own goroutine.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := b.subs[ev.Topic]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(ev)
	}
}
