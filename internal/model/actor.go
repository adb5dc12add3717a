package model

// Actor is the verified identity behind a request, extracted from a validated
// token by the auth middleware. Workflow operations take the actor explicitly
// so that sensitive transitions can re-check authorization themselves instead
// of trusting the transport layer alone.
type Actor struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name"`
	RoleCode   string   `json:"role_code"`
	Privileges []string `json:"privileges"`
}

func (a Actor) IsAdmin() bool {
	return a.RoleCode == RoleAdmin
}

func (a Actor) HasPrivilege(code string) bool {
	for _, p := range a.Privileges {
		if p == code {
			return true
		}
	}
	return false
}
