package repository

import "github.com/tu-usuario/abuela-pos/internal/domain/entity"

// RecordRepository acceso al libro de transacciones. Los registros son
// inmutables: solo se agregan, se listan o se eliminan (el control de rol
// vive en el caso de uso, no aquí).
type RecordRepository interface {
	Append(r *entity.Record) error
	Delete(id string) error // domain.ErrNotFound si no existe
	// ListAsc devuelve los registros por timestamp ascendente (para agregación).
	ListAsc() ([]entity.Record, error)
	// ListDesc devuelve los registros por timestamp descendente (para mostrar).
	ListDesc() ([]entity.Record, error)
}
