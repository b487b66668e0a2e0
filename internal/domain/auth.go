package domain

// AuthSession holds the bearer credential and role returned by a
// successful login. The zero value is unauthenticated.
type AuthSession struct {
	Token     string `json:"token"`
	TokenType string `json:"tokenType"`
	Role      string `json:"role"`
}

// Authenticated reports whether a credential is present.
func (s AuthSession) Authenticated() bool {
	return s.Token != ""
}

// AuthorizationValue renders the Authorization header value for requests
// made on behalf of this session.
func (s AuthSession) AuthorizationValue() string {
	scheme := s.TokenType
	if scheme == "" {
		scheme = "Bearer"
	}
	return scheme + " " + s.Token
}
