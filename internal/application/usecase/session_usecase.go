package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/application/ports"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
	"github.com/tu-usuario/abuela-pos/internal/domain/stock"
)

// Estados de la sesión de entrada.
const (
	SessionEmpty        = "EMPTY"
	SessionDraftPending = "DRAFT_PENDING"
)

// placeholderItemName línea sustituta cuando la IA devuelve un recibo sin líneas.
const placeholderItemName = "Artículo del recibo"

// aiCallTimeout tope por llamada al modelo; las latencias externas no deben
// bloquear los goroutines del servidor.
const aiCallTimeout = 10 * time.Second

// sessionDraft borrador en revisión. Vive solo en memoria: no toca el libro
// ni el stock hasta confirmarse.
type sessionDraft struct {
	Category string
	Items    []entity.LineItem
	Ice      entity.IceMetrics
	Notes    string
}

// SessionUseCase máquina de estados de la sesión de entrada de mercancía:
// EMPTY → DRAFT_PENDING → (confirmada como un registro del libro | descartada).
// A lo sumo hay una sesión abierta; abrir otra reemplaza el borrador anterior.
type SessionUseCase struct {
	mu       sync.Mutex
	reader   ports.ReceiptReader
	records  repository.RecordRepository
	products repository.ProductRepository
	config   repository.ConfigRepository
	credits  *CreditsUseCase

	draft *sessionDraft // nil = EMPTY
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(
	reader ports.ReceiptReader,
	records repository.RecordRepository,
	products repository.ProductRepository,
	config repository.ConfigRepository,
	credits *CreditsUseCase,
) *SessionUseCase {
	return &SessionUseCase{
		reader:   reader,
		records:  records,
		products: products,
		config:   config,
		credits:  credits,
	}
}

// StartFromReceipt lee la foto del recibo con la IA y abre el borrador.
//
// La llamada consume un crédito y se reintenta una sola vez. Si el proveedor
// agota la cuota (o no quedan créditos) se devuelve domain.ErrAIQuotaExceeded
// con el estado intacto. Cualquier otro fallo degrada a un borrador manual
// vacío en lugar de abortar: el peor caso es teclear el recibo a mano.
func (uc *SessionUseCase) StartFromReceipt(ctx context.Context, imageBase64 string) (*dto.SessionView, error) {
	if strings.TrimSpace(imageBase64) == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.credits.Consume(); err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()

	read, err := uc.reader.ReadReceipt(callCtx, imageBase64)
	if err != nil && !errors.Is(err, domain.ErrAIQuotaExceeded) {
		// Un solo reintento; los colaboradores de IA son opacos y fallan a ratos.
		read, err = uc.reader.ReadReceipt(callCtx, imageBase64)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	switch {
	case err == nil:
		uc.draft = draftFromReceipt(read)
	case errors.Is(err, domain.ErrAIQuotaExceeded):
		return nil, err
	default:
		// Recibo ilegible: borrador manual con una línea en blanco.
		uc.draft = emptyDraft()
	}
	return uc.viewLocked(), nil
}

// StartManual abre un borrador vacío sin pasar por la IA.
func (uc *SessionUseCase) StartManual(in dto.StartManualSessionRequest) (*dto.SessionView, error) {
	category := in.Category
	if category == "" {
		category = entity.CategoryOthers
	}
	if !validIntakeCategory(category) {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	d := emptyDraft()
	d.Category = category
	uc.draft = d
	return uc.viewLocked(), nil
}

// Edit aplica una edición al borrador pendiente. Las cantidades y precios
// negativos se recortan aquí, en la frontera de edición, no al confirmar.
func (uc *SessionUseCase) Edit(in dto.EditSessionRequest) (*dto.SessionView, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.draft == nil {
		return nil, domain.ErrNoSession
	}
	if in.Category != nil {
		if !validIntakeCategory(*in.Category) {
			return nil, domain.ErrInvalidInput
		}
		uc.draft.Category = *in.Category
	}
	if in.Items != nil {
		items := make([]entity.LineItem, 0, len(*in.Items))
		for _, it := range *in.Items {
			items = append(items, sanitizeItem(it))
		}
		uc.draft.Items = items
	}
	if in.IceMetrics != nil {
		uc.draft.Ice = entity.IceMetrics{
			Delivered: clampInt(in.IceMetrics.Delivered),
			Returned:  clampInt(in.IceMetrics.Returned),
		}
	}
	if in.Notes != nil {
		uc.draft.Notes = *in.Notes
	}
	return uc.viewLocked(), nil
}

// Commit confirma el borrador: filtra las líneas sin nombre, recalcula el
// total desde las líneas restantes (nunca se confía en el total de la IA),
// agrega un registro INVESTMENT al libro y dispara la conciliación de stock.
// Un borrador que se queda sin líneas válidas igualmente se confirma, con
// lista vacía y total cero; es un caso permitido, no un error.
func (uc *SessionUseCase) Commit() (*dto.RecordResponse, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.draft == nil {
		return nil, domain.ErrNoSession
	}

	items := make([]entity.LineItem, 0, len(uc.draft.Items))
	for _, it := range uc.draft.Items {
		if strings.TrimSpace(it.Name) == "" {
			continue
		}
		items = append(items, it)
	}

	cfg, err := uc.config.GetConfig()
	if err != nil {
		return nil, err
	}

	rec := &entity.Record{
		ID:        uuid.New().String(),
		Timestamp: time.Now(),
		Type:      entity.RecordTypeInvestment,
		Category:  uc.draft.Category,
		Items:     items,
		TotalCost: entity.SumItems(items),
		Notes:     uc.draft.Notes,
		Synced:    cfg.SyncEnabled,
	}
	if uc.draft.Ice.Delivered != 0 || uc.draft.Ice.Returned != 0 {
		ice := uc.draft.Ice
		rec.IceMetrics = &ice
	}

	if err := uc.records.Append(rec); err != nil {
		return nil, err
	}

	// Conciliación de entrada: literal por defecto, difusa si se configuró así.
	products, err := uc.products.List()
	if err != nil {
		return nil, err
	}
	products = stock.ApplyIntake(products, rec.Items, cfg.IntakeMatchPolicy)
	if err := uc.products.ReplaceAll(products); err != nil {
		return nil, err
	}

	uc.draft = nil
	resp := dto.ToRecordResponse(*rec)
	return &resp, nil
}

// Discard cierra la sesión sin efecto alguno sobre el libro ni el stock.
func (uc *SessionUseCase) Discard() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.draft = nil
}

// View devuelve el estado actual de la sesión.
func (uc *SessionUseCase) View() *dto.SessionView {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.viewLocked()
}

func (uc *SessionUseCase) viewLocked() *dto.SessionView {
	if uc.draft == nil {
		return &dto.SessionView{State: SessionEmpty, Total: decimal.Zero}
	}
	items := make([]dto.LineItemDTO, 0, len(uc.draft.Items))
	for _, it := range uc.draft.Items {
		items = append(items, dto.LineItemDTO{
			Name: it.Name, Quantity: it.Quantity,
			UnitPrice: it.UnitPrice, TotalPrice: it.TotalPrice,
		})
	}
	ice := dto.IceMetricsDTO{Delivered: uc.draft.Ice.Delivered, Returned: uc.draft.Ice.Returned}
	return &dto.SessionView{
		State:      SessionDraftPending,
		Category:   uc.draft.Category,
		Items:      items,
		IceMetrics: &ice,
		Notes:      uc.draft.Notes,
		Total:      entity.SumItems(uc.draft.Items),
	}
}

// draftFromReceipt sanea la salida best-effort de la IA: categoría válida,
// al menos una línea (sustituta si vinieron cero) y negativos recortados.
func draftFromReceipt(read *dto.ReceiptDraft) *sessionDraft {
	d := &sessionDraft{Category: read.Category, Notes: read.Notes}
	if !validIntakeCategory(d.Category) {
		d.Category = entity.CategoryOthers
	}
	for _, it := range read.Items {
		d.Items = append(d.Items, sanitizeItem(it))
	}
	if len(d.Items) == 0 {
		d.Items = []entity.LineItem{{
			Name: placeholderItemName, Quantity: 1,
			UnitPrice: decimal.Zero, TotalPrice: decimal.Zero,
		}}
	}
	if read.IceMetrics != nil {
		d.Ice = entity.IceMetrics{
			Delivered: clampInt(read.IceMetrics.Delivered),
			Returned:  clampInt(read.IceMetrics.Returned),
		}
	}
	return d
}

func emptyDraft() *sessionDraft {
	return &sessionDraft{
		Category: entity.CategoryOthers,
		Items: []entity.LineItem{{
			Name: "", Quantity: 1,
			UnitPrice: decimal.Zero, TotalPrice: decimal.Zero,
		}},
	}
}

// validIntakeCategory acepta las categorías de compra; SALE es solo de ventas.
func validIntakeCategory(c string) bool {
	return entity.ValidCategory(c) && c != entity.CategorySale
}

func sanitizeItem(it dto.LineItemDTO) entity.LineItem {
	out := entity.LineItem{
		Name:       it.Name,
		Quantity:   clampInt(it.Quantity),
		UnitPrice:  clampDecimal(it.UnitPrice),
		TotalPrice: clampDecimal(it.TotalPrice),
	}
	return out
}

func clampInt(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampDecimal(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
