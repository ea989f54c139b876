package identity

// DefaultLogin is used when no login is configured and $USER is unset.
var DefaultLogin = "unknown"

// Identity holds the author fields rendered into a 42 header.
type Identity struct {
	Login string
	Email string
}

// Identifier resolves the identity used for header author fields.
type Identifier interface {
	// Resolve fills any empty field of the seed identity from the
	// environment and local git configuration. Every field has a
	// defined fallback, so resolution cannot fail.
	Resolve(seed Identity) Identity
}
