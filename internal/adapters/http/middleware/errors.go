package middleware

import "errors"

// Credential rejection causes. Logged server-side; clients only ever
// see the generic denial.
var (
	errMissingCredential       = errors.New("missing authorization header")
	errMalformedCredential     = errors.New("authorization header is not a bearer credential")
	errInvalidCredential       = errors.New("credential failed verification")
	errMissingSubject          = errors.New("credential carries no subject")
	errUnexpectedSigningMethod = errors.New("unexpected signing method")
)
