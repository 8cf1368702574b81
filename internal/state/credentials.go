package state

// Credentials seals passwords for storage and checks attempts against the
// sealed form. Comparison is always exact: no trimming, no case folding.
type Credentials interface {
	Seal(password string) (string, error)
	Verify(sealed, attempt string) bool
}

// Plaintext stores passwords as given.
//
// It is insecure: anyone who can read the database can read every password.
// It exists to keep stores written by earlier versions readable; substitute a
// hashing implementation through Options.Credentials.
type Plaintext struct{}

func (Plaintext) Seal(password string) (string, error) { return password, nil }

func (Plaintext) Verify(sealed, attempt string) bool { return sealed == attempt }
