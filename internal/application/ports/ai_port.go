package ports

import (
	"context"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
)

// ReceiptReader define el puerto de salida para la lectura de recibos con IA.
// Cualquier adaptador (Gemini, mock) debe implementar esta interfaz; la
// aplicación solo conoce este contrato, no la implementación concreta.
//
// Errores esperados: domain.ErrAIQuotaExceeded cuando el proveedor agota la
// cuota y domain.ErrAIUnrecognized cuando la imagen no se puede interpretar.
// El caso de uso nunca los propaga como fatales: degrada a borrador manual.
type ReceiptReader interface {
	// ReadReceipt analiza la foto de un recibo y devuelve un borrador con
	// categoría, líneas y, si aplica, contadores de hielo y notas.
	// El contexto debe llevar timeout para no bloquear en llamadas externas.
	ReadReceipt(ctx context.Context, imageBase64 string) (*dto.ReceiptDraft, error)
}

// ProductRecognizer define el puerto para reconocer un producto en una foto.
// knownNames ayuda al modelo a elegir entre los nombres ya catalogados.
type ProductRecognizer interface {
	RecognizeProduct(ctx context.Context, imageBase64 string, knownNames []string) (string, error)
}
