package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
)

var _ usecase.EventPublisher = (*Publisher)(nil)

// Publisher publica eventos de dominio en Kafka con un productor síncrono.
// La semántica de entrega queda en manos del llamador: el caso de uso trata
// cualquier error como pérdida aceptable (at-most-once, sin outbox).
type Publisher struct {
	syncProducer sarama.SyncProducer
}

// NewPublisher crea el productor síncrono contra los brokers dados.
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5

	p, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("crear productor kafka: %w", err)
	}
	return &Publisher{syncProducer: p}, nil
}

// Publish serializa el payload a JSON y lo envía al topic con la key dada
// (la key particiona por producto, preservando orden por entidad).
func (p *Publisher) Publish(_ context.Context, topic, key string, payload interface{}) error {
	jsonMsg, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(jsonMsg),
	}
	partition, offset, err := p.syncProducer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("enviar mensaje a %s: %w", topic, err)
	}
	log.Debug().Str("topic", topic).Int32("partition", partition).Int64("offset", offset).Msg("evento publicado")
	return nil
}

// Close cierra el productor.
func (p *Publisher) Close() error {
	return p.syncProducer.Close()
}
