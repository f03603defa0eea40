package entity

// KindAdmin is the user kind the identity provider assigns to staff admins.
const KindAdmin = "admin"

// Identity is the authenticated caller as reported by the identity provider.
// A nil *Identity means no one is logged in.
type Identity struct {
	Login string
	Kind  string
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Kind == KindAdmin
}

// DisplayLogin returns the login, or "unknown" for audit entries when the
// provider returned an identity without one.
func (i *Identity) DisplayLogin() string {
	if i == nil || i.Login == "" {
		return "unknown"
	}
	return i.Login
}
