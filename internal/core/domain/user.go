package domain

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// Account is a backend user as the sandbox stores it. The client side only
// ever sees the derived LoginData.
type Account struct {
	ID           string       `json:"user_id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	UserType     string       `json:"user_type"`
	Permissions  []Permission `json:"permissions"`
	// CustomerID scopes which orders the account may see; empty sees all.
	CustomerID string `json:"customer_id,omitempty"`
}

// Grant is a convenience for building permission fixtures.
func Grant(module string, actions ...Action) Permission {
	yes := true
	p := Permission{Module: module}
	for _, a := range actions {
		switch a {
		case ActionRead:
			p.Actions.Read = &yes
		case ActionCreate:
			p.Actions.Create = &yes
		case ActionUpdate:
			p.Actions.Update = &yes
		case ActionDelete:
			p.Actions.Delete = &yes
		}
	}
	return p
}

// Permission modules the dashboard checks.
const (
	ModuleOrders    = "orders"
	ModuleContacts  = "order_pocs"
	ModuleDocuments = "order_documents"
	ModuleTracking  = "shipment_tracking"
	ModulePhotos    = "stuffing_photos"
	ModuleProgress  = "activity_logs"
)

// Can reports whether the account holds action on module.
func (a Account) Can(module string, action Action) bool {
	for _, p := range a.Permissions {
		if p.Module == module {
			return p.Actions.Allows(action)
		}
	}
	return false
}
