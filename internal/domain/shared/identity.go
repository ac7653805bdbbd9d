package shared

import "strings"

// Identity is an opaque caller identifier supplied by the identity provider.
// The ledger never inspects it beyond equality.
type Identity string

// String returns the identity as a string
func (i Identity) String() string {
	return string(i)
}

// IsZero returns true if the identity is empty
func (i Identity) IsZero() bool {
	return strings.TrimSpace(string(i)) == ""
}

// ParseIdentity validates a raw identity
func ParseIdentity(raw string) (Identity, error) {
	id := Identity(strings.TrimSpace(raw))
	if id.IsZero() {
		return "", NewDomainError("INVALID_IDENTITY", "Identity cannot be empty")
	}
	return id, nil
}
