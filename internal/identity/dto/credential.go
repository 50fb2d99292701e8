package dto

type IssueCredentialInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CredentialResponse is the payload of a successful issuance. User is the
// public-safe projection of the authenticated account; id and password
// hash are deliberately excluded.
type CredentialResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         UserOutput `json:"user"`
}
