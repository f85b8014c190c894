// Package storage implementa la persistencia de la tienda: un almacén de
// blobs JSON direccionados por clave (drivers file, memory y postgres) y los
// repositorios en memoria que lo usan como espejo best-effort.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tu-usuario/abuela-pos/internal/application/ports"
)

var _ ports.SnapshotStore = (*FileStore)(nil)

// FileStore guarda cada dirección como un archivo JSON dentro de dataDir.
// Es el driver por defecto: la tienda es un dispositivo local único.
type FileStore struct {
	dir string
}

// NewFileStore crea el directorio de datos si no existe.
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de datos: %w", err)
	}
	return &FileStore{dir: dataDir}, nil
}

// Load devuelve el blob de la dirección, o nil si el archivo no existe.
func (s *FileStore) Load(_ context.Context, address string) ([]byte, error) {
	data, err := os.ReadFile(s.path(address))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("leer blob %s: %w", address, err)
	}
	return data, nil
}

// Save escribe el blob con write-temp-then-rename para no dejar archivos a medias.
func (s *FileStore) Save(_ context.Context, address string, blob []byte) error {
	path := s.path(address)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, blob, 0o644); err != nil {
		return fmt.Errorf("escribir blob %s: %w", address, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("renombrar blob %s: %w", address, err)
	}
	return nil
}

func (s *FileStore) path(address string) string {
	return filepath.Join(s.dir, address+".json")
}
