package entity

import "time"

// Roles de acceso. El dueño puede borrar registros y administrar el catálogo;
// el personal solo opera el punto de venta.
const (
	RoleOwner = "OWNER"
	RoleStaff = "STAFF"
)

// Políticas de conciliación de entradas (ver stock.ApplyIntake).
const (
	IntakeMatchExact = "exact" // igualdad de nombre normalizado
	IntakeMatchFuzzy = "fuzzy" // resuelve el nombre con el matcher del punto de venta
)

// ShopConfig configuración persistida de la tienda.
type ShopConfig struct {
	ShopID            string     `json:"shopId"`
	SyncEnabled       bool       `json:"isEnabled"` // marca los registros nuevos como sincronizados
	LastSync          *time.Time `json:"lastSync,omitempty"`
	OwnerPINHash      string     `json:"ownerPinHash,omitempty"` // bcrypt; vacío = sin PIN configurado
	WeekStart         string     `json:"weekStart"`              // sunday | monday
	IntakeMatchPolicy string     `json:"intakeMatchPolicy"`      // exact | fuzzy
}
