package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// El ledger nunca deja estado parcial: toda mutación multi-paso se ejecuta en
// una transacción y se revierte completa ante cualquiera de estos errores.
var (
	ErrNotFound                 = errors.New("recurso no encontrado")
	ErrInvalidInput             = errors.New("entrada inválida")
	ErrDuplicate                = errors.New("recurso duplicado")
	ErrConflict                 = errors.New("conflicto con el estado actual")
	ErrInvalidQuantity          = errors.New("cantidad inválida")
	ErrInvalidState             = errors.New("estado de la orden no permite la operación")
	ErrInvalidOperation         = errors.New("operación no válida para este tipo de orden")
	ErrInsufficientStock        = errors.New("stock insuficiente")
	ErrInsufficientTransitStock = errors.New("stock en tránsito insuficiente")
	ErrLotKeyMismatch           = errors.New("clave de lote no coincide con el artículo")
)
