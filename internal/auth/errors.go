package auth

// Code identifies why a credential was rejected.
type Code string

const (
	CodeNoToken      Code = "no_token"
	CodeMalformed    Code = "malformed"
	CodeBadSignature Code = "bad_signature"
	CodeExpired      Code = "expired"
)

// AuthError is the tagged error returned by token validation. Callers branch
// on Code; the message is safe to return to clients.
type AuthError struct {
	Code    Code
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

var (
	ErrNoToken      = &AuthError{Code: CodeNoToken, Message: "No token provided"}
	ErrMalformed    = &AuthError{Code: CodeMalformed, Message: "Malformed token"}
	ErrBadSignature = &AuthError{Code: CodeBadSignature, Message: "Invalid token signature"}
	ErrExpired      = &AuthError{Code: CodeExpired, Message: "Token expired"}
)
