package gpg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// armorHeader prefixes every armored signature
const armorHeader = "-----BEGIN PGP SIGNATURE-----"

// Verifier checks detached signatures over baseline blobs using ProtonMail's go-crypto
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{keyring: make(openpgp.EntityList, 0)}
}

// NewVerifierFromFile creates a verifier trusting the keys in keyPath
func NewVerifierFromFile(keyPath string) (*Verifier, error) {
	v := NewVerifier()
	if err := v.ImportKeyFromFile(keyPath); err != nil {
		return nil, err
	}
	return v, nil
}

// ImportKeyFromFile adds the keys of an armored or binary keyring file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	entities, err := readKeyFile(keyPath)
	if err != nil {
		return err
	}
	v.keyring = append(v.keyring, entities...)
	return nil
}

// AddKeys trusts the given entities
func (v *Verifier) AddKeys(entities ...*openpgp.Entity) {
	v.keyring = append(v.keyring, entities...)
}

// Verify checks an armored or binary detached signature over blob
func (v *Verifier) Verify(blob, signature string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no GPG keys imported")
	}

	// Signatures are tiny; anything shorter is certainly not one
	if len(signature) < 10 {
		return fmt.Errorf("signature too small to be valid GPG signature")
	}

	signed := strings.NewReader(blob)
	var err error
	if strings.HasPrefix(strings.TrimSpace(signature), armorHeader) {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, signed, strings.NewReader(signature), nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, signed, bytes.NewReader([]byte(signature)), nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}

// GetKeyringSize returns the number of keys in the keyring
func (v *Verifier) GetKeyringSize() int {
	return len(v.keyring)
}
