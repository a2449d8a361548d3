package usecase

import (
	"context"

	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que los chequeos de existencia
// y la escritura de cada operación se apliquen todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categories repository.CategoryRepository,
		products repository.ProductRepository,
	) error) error
}

// EventPublisher puerto de publicación de eventos de dominio (fire-and-forget).
// La publicación ocurre después del commit y su fallo nunca revierte ni
// falla la operación que la originó.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}
