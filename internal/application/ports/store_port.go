package ports

import "context"

// Direcciones de los blobs persistidos, una por colección de nivel superior.
// Las claves son compatibles con los volcados del almacenamiento local de la
// app de la tienda, para poder importarlos tal cual.
const (
	AddrRecords  = "inventory_records"
	AddrProducts = "pos_products"
	AddrCredits  = "ai_credits"
	AddrConfig   = "sync_config"
)

// SnapshotStore almacén clave/valor de blobs JSON serializados de forma
// independiente. La persistencia es un espejo best-effort: el estado en
// memoria manda y un error de escritura solo se registra en el log.
type SnapshotStore interface {
	// Load devuelve el blob guardado en la dirección, o nil si no existe.
	Load(ctx context.Context, address string) ([]byte, error)
	Save(ctx context.Context, address string, blob []byte) error
}
