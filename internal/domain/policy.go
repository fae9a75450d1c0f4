package domain

// Permissions are the UI-level gates derived from the operator's role.
// The backend enforces its own authorization; these only decide what the
// console offers.
type Permissions struct {
	CanManageBarbers bool   `json:"can_manage_barbers"`
	CanBook          bool   `json:"can_book"`
	IsBarber         bool   `json:"is_barber"`
	Reason           string `json:"reason,omitempty"`
}

// CalculatePermissions determines what the operator can do in the console.
func CalculatePermissions(user *User) Permissions {
	// 1. Auth Gate
	if user == nil {
		return Permissions{Reason: "auth_required"}
	}

	// 2. Blocked accounts see their data but cannot act
	if user.Bloqueado {
		return Permissions{
			IsBarber: user.Role.Nombre == RoleBarber,
			Reason:   "account_blocked",
		}
	}

	role := user.Role.Nombre
	return Permissions{
		CanManageBarbers: role == RoleAdmin || role == RoleOwner,
		CanBook:          true,
		IsBarber:         role == RoleBarber,
	}
}
