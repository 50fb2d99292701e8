// Package password wraps bcrypt hashing and verification of user
// passwords. Hashes are self-contained (salt and cost are embedded in the
// output), so two hashes of the same password differ.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a salted bcrypt hash of plain at the default cost.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashed), nil
}

// Verify reports whether plain matches the stored hash. The comparison is
// constant-time over the digest. A malformed hash verifies as false; it is
// only ever called with previously stored hashes.
func Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
