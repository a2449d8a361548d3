package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Catalogo-api/internal/application/usecase"
	"github.com/jhoicas/Catalogo-api/internal/domain/repository"
)

var _ usecase.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks contra los repositorios en memoria bajo un
// mutex global: serializa las operaciones completas (chequeo + escritura)
// igual que una transacción, aunque sin rollback de escrituras parciales.
// Suficiente para tests; los adaptadores postgres dan la garantía real.
type TxRunner struct {
	mu         sync.Mutex
	categories *CategoryRepo
	products   *ProductRepo
}

// NewTxRunner construye el runner sobre los repos en memoria compartidos.
func NewTxRunner(categories *CategoryRepo, products *ProductRepo) *TxRunner {
	return &TxRunner{categories: categories, products: products}
}

// Run ejecuta fn con los repos compartidos, serializado.
func (r *TxRunner) Run(_ context.Context, fn func(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(r.categories, r.products)
}
