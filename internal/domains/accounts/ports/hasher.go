package ports

// PasswordHasher turns a plaintext password into a storable credential hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
