package domain

// Action is an operation within a permission module.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// PermissionActions holds the per-action flags of a module. A nil flag means
// the backend did not send it, which is treated the same as false.
type PermissionActions struct {
	Read   *bool `json:"read,omitempty"`
	Create *bool `json:"create,omitempty"`
	Update *bool `json:"update,omitempty"`
	Delete *bool `json:"delete,omitempty"`
}

// Allows reports whether the flag for action is present and true.
func (a PermissionActions) Allows(action Action) bool {
	var flag *bool
	switch action {
	case ActionRead:
		flag = a.Read
	case ActionCreate:
		flag = a.Create
	case ActionUpdate:
		flag = a.Update
	case ActionDelete:
		flag = a.Delete
	}
	return flag != nil && *flag
}

// Permission grants actions within a named module.
type Permission struct {
	Module  string            `json:"module"`
	Actions PermissionActions `json:"actions"`
}

// User is the authenticated identity attached to a Session.
type User struct {
	ID          string       `json:"id"`
	Email       string       `json:"email"`
	Role        string       `json:"role"`
	UserType    string       `json:"userType"`
	Permissions []Permission `json:"permissions"`
}

// Session is the authentication state owned by the session store.
// Empty token strings stand for "no token".
type Session struct {
	User            *User
	AccessToken     string
	RefreshToken    string
	IsAuthenticated bool
}

// LoginData carries the fields returned by the backend login endpoint.
type LoginData struct {
	UserID       string
	Email        string
	AccessToken  string
	RefreshToken string
	Role         string
	UserType     string
	Permissions  []Permission
}

// Clone returns a deep copy so callers can never alias store-owned state.
func (s Session) Clone() Session {
	out := s
	if s.User != nil {
		u := *s.User
		u.Permissions = clonePermissions(s.User.Permissions)
		out.User = &u
	}
	return out
}

// Consistent reports whether the authentication flag agrees with the tokens.
func (s Session) Consistent() bool {
	hasTokens := s.AccessToken != "" && s.RefreshToken != ""
	if s.IsAuthenticated {
		return hasTokens && s.User != nil
	}
	return true
}

// HasPermission is the pure lookup behind SessionStore.HasPermission.
func (s Session) HasPermission(module string, action Action) bool {
	if s.User == nil {
		return false
	}
	for _, p := range s.User.Permissions {
		if p.Module == module {
			return p.Actions.Allows(action)
		}
	}
	return false
}

// NewSession builds the authenticated session for a successful login.
func NewSession(data LoginData) Session {
	return Session{
		User: &User{
			ID:          data.UserID,
			Email:       data.Email,
			Role:        data.Role,
			UserType:    data.UserType,
			Permissions: clonePermissions(data.Permissions),
		},
		AccessToken:     data.AccessToken,
		RefreshToken:    data.RefreshToken,
		IsAuthenticated: true,
	}
}

func clonePermissions(in []Permission) []Permission {
	if in == nil {
		return nil
	}
	out := make([]Permission, len(in))
	for i, p := range in {
		out[i] = Permission{
			Module: p.Module,
			Actions: PermissionActions{
				Read:   cloneFlag(p.Actions.Read),
				Create: cloneFlag(p.Actions.Create),
				Update: cloneFlag(p.Actions.Update),
				Delete: cloneFlag(p.Actions.Delete),
			},
		}
	}
	return out
}

func cloneFlag(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
