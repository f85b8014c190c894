package dto

// LoginRequest intercambia el ID de tienda (y opcionalmente el PIN de dueño)
// por un token. Sin PIN se emite un token de personal (STAFF).
type LoginRequest struct {
	ShopID string `json:"shopId"`
	PIN    string `json:"pin"`
}

// LoginResponse token emitido y rol asignado.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// SetPINRequest establece o cambia el PIN de dueño.
type SetPINRequest struct {
	PIN string `json:"pin"`
}

// TopUpResponse saldo de créditos tras la recarga.
type TopUpResponse struct {
	Credits int `json:"credits"`
}
