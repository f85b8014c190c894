package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrDuplicate    = errors.New("recurso duplicado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrInvalidPIN   = errors.New("PIN incorrecto")

	ErrNoSession   = errors.New("no hay borrador abierto")
	ErrSessionOpen = errors.New("ya hay un borrador abierto")
	ErrEmptyCart   = errors.New("el carrito está vacío")

	ErrAIQuotaExceeded = errors.New("créditos de IA agotados")
	ErrAIUnrecognized  = errors.New("la IA no reconoció la imagen")
)
