package domain

import "errors"

// Errores de dominio (sin dependencias externas). El transporte los mapea
// a códigos HTTP estables; nunca se colapsan en un error genérico.
var (
	ErrUnauthorized        = errors.New("no autorizado")
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrNameConflict        = errors.New("ya existe una categoría con ese nombre en este tenant")
	ErrSKUConflict         = errors.New("el SKU ya existe en este tenant")
	ErrInvalidParent       = errors.New("una categoría no puede ser su propio padre")
	ErrCategoryHasProducts = errors.New("la categoría tiene productos activos asociados")
	ErrCategoryHasChildren = errors.New("la categoría tiene subcategorías")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrBadRequest          = errors.New("tenant_id requerido")
)
