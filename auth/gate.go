package auth

// Role is the access level resolved from a request credential.
type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleCashier   Role = "cashier"
	RoleKitchen   Role = "kitchen"
)

// Gate maps an opaque shared-secret token to a Role by exact string
// comparison. It keeps no state and has no side effects, so it can be
// swapped for a real identity system without touching route logic.
type Gate struct {
	CashierSecret string
	KitchenSecret string
}

func NewGate(cashierSecret, kitchenSecret string) *Gate {
	return &Gate{
		CashierSecret: cashierSecret,
		KitchenSecret: kitchenSecret,
	}
}

// Resolve classifies a raw credential. An empty or unknown token is
// anonymous; an empty configured secret never matches anything.
func (g *Gate) Resolve(token string) Role {
	if token == "" {
		return RoleAnonymous
	}
	if g.CashierSecret != "" && token == g.CashierSecret {
		return RoleCashier
	}
	if g.KitchenSecret != "" && token == g.KitchenSecret {
		return RoleKitchen
	}
	return RoleAnonymous
}

// Satisfies reports whether role meets any of the allowed roles.
func Satisfies(role Role, allowed ...Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}
