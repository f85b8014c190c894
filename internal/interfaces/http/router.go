package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/abuela-pos/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *usecase.AuthUseCase
	CatalogUC *usecase.CatalogUseCase
	LedgerUC  *usecase.LedgerUseCase
	SessionUC *usecase.SessionUseCase
	POSUC     *usecase.POSUseCase
	CreditsUC *usecase.CreditsUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	protected.Put("/auth/pin", RequireOwner(), authHandler.SetPIN)

	// Catálogo de productos
	products := protected.Group("/products")
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	products.Get("/", catalogHandler.List)
	products.Post("/", catalogHandler.Create)
	products.Put("/:id", catalogHandler.Update)
	products.Delete("/:id", catalogHandler.Delete)

	// Libro de registros y resúmenes
	records := protected.Group("/records")
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	records.Get("/", ledgerHandler.List)
	records.Get("/summary", ledgerHandler.Summary)
	records.Get("/ice-balance", ledgerHandler.IceBalance)
	records.Delete("/:id", ledgerHandler.Delete)

	// Sesión de recepción de mercancía
	session := protected.Group("/session")
	sessionHandler := NewSessionHandler(deps.SessionUC)
	session.Get("/", sessionHandler.View)
	session.Post("/scan", sessionHandler.ScanReceipt)
	session.Post("/manual", sessionHandler.StartManual)
	session.Patch("/", sessionHandler.Edit)
	session.Post("/commit", sessionHandler.Commit)
	session.Delete("/", sessionHandler.Discard)

	// Punto de venta
	pos := protected.Group("/pos")
	posHandler := NewPOSHandler(deps.POSUC)
	pos.Post("/scan", posHandler.Scan)
	pos.Get("/cart", posHandler.Cart)
	pos.Post("/cart/items", posHandler.AddItem)
	pos.Delete("/cart/items/:productId", posHandler.RemoveItem)
	pos.Post("/checkout", posHandler.Checkout)
	pos.Delete("/cart", posHandler.Discard)

	// Créditos de IA
	credits := protected.Group("/credits")
	creditsHandler := NewCreditsHandler(deps.CreditsUC)
	credits.Get("/", creditsHandler.Balance)
	credits.Post("/topup", RequireOwner(), creditsHandler.TopUp)
}
