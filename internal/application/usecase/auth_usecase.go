package usecase

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/abuela-pos/internal/application/dto"
	"github.com/tu-usuario/abuela-pos/internal/domain"
	"github.com/tu-usuario/abuela-pos/internal/domain/entity"
	"github.com/tu-usuario/abuela-pos/internal/domain/repository"
	pkgjwt "github.com/tu-usuario/abuela-pos/pkg/jwt"
)

// JWTConfig parámetros de emisión de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase emisión de tokens por rol. Sin PIN configurado la tienda opera
// en modo de un solo dueño y cualquier login recibe rol OWNER; con PIN, el
// PIN correcto da OWNER y la ausencia de PIN da STAFF.
type AuthUseCase struct {
	config repository.ConfigRepository
	jwt    JWTConfig
}

// NewAuthUseCase construye el caso de uso.
func NewAuthUseCase(config repository.ConfigRepository, jwt JWTConfig) *AuthUseCase {
	return &AuthUseCase{config: config, jwt: jwt}
}

// Login valida el PIN (bcrypt) y emite el token con tienda y rol.
// Un PIN incorrecto devuelve ErrInvalidPIN sin emitir nada.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	cfg, err := uc.config.GetConfig()
	if err != nil {
		return nil, err
	}

	role := entity.RoleStaff
	switch {
	case cfg.OwnerPINHash == "":
		role = entity.RoleOwner
	case in.PIN == "":
		role = entity.RoleStaff
	default:
		if bcrypt.CompareHashAndPassword([]byte(cfg.OwnerPINHash), []byte(in.PIN)) != nil {
			return nil, domain.ErrInvalidPIN
		}
		role = entity.RoleOwner
	}

	shopID := in.ShopID
	if shopID == "" {
		shopID = cfg.ShopID
	}
	token, err := pkgjwt.Generate(uc.jwt.Secret, shopID, role, uc.jwt.Issuer, uc.jwt.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Role: role}, nil
}

// SetOwnerPIN fija (o cambia) el PIN de dueño; se guarda solo el hash bcrypt.
func (uc *AuthUseCase) SetOwnerPIN(role, pin string) error {
	if role != entity.RoleOwner {
		return domain.ErrForbidden
	}
	if len(pin) < 4 {
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	cfg, err := uc.config.GetConfig()
	if err != nil {
		return err
	}
	cfg.OwnerPINHash = string(hash)
	return uc.config.SaveConfig(cfg)
}
