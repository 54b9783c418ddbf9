package role

import "github.com/marcou-app/marcou/internal/httperr"

// Conjunto fechado de papéis. Qualquer outra string vinda de um token
// é rejeitada na borda.
type Role string

const (
	Superadmin Role = "superadmin"
	Owner      Role = "owner"
	Staff      Role = "staff"
	Client     Role = "client"
)

func Parse(s string) (Role, error) {
	switch Role(s) {
	case Superadmin, Owner, Staff, Client:
		return Role(s), nil
	}
	return "", httperr.ErrBusiness("invalid_role")
}

// CanManageBookings indica quem pode criar/cancelar/concluir agendamentos
// pela API privada.
func (r Role) CanManageBookings() bool {
	return r == Owner || r == Staff
}

func (r Role) IsStaffMember() bool {
	return r == Owner || r == Staff
}
