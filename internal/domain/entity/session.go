package entity

// Session identifies the signed-in staff member for one request. It is built from the
// console access token and the upstream token kept in the session registry, and is
// passed by value into usecases and the gateway.
type Session struct {
	UserID           string
	Email            string
	FullName         string
	Role             string
	OrganizationID   string
	OrganizationName string
	TokenID          string
	UpstreamToken    string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
