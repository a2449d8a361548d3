package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

var _ usecase.EventPublisher = (*Publisher)(nil)

// PublishedMessage un mensaje registrado por el publisher en memoria.
type PublishedMessage struct {
	Topic   string
	Key     string
	Payload interface{}
}

// Publisher implementación en memoria de EventPublisher para tests:
// registra cada publicación y puede forzarse a fallar con FailWith.
type Publisher struct {
	mu       sync.Mutex
	messages []PublishedMessage

	// FailWith, si no es nil, se devuelve en cada Publish (simula broker caído).
	FailWith error
}

// NewPublisher construye el publisher vacío.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish registra el mensaje (o falla con FailWith).
func (p *Publisher) Publish(_ context.Context, topic, key string, payload interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.FailWith != nil {
		return p.FailWith
	}
	p.messages = append(p.messages, PublishedMessage{Topic: topic, Key: key, Payload: payload})
	return nil
}

// Messages devuelve una copia de los mensajes publicados.
func (p *Publisher) Messages() []PublishedMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedMessage, len(p.messages))
	copy(out, p.messages)
	return out
}
