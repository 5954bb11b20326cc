package gpg

import (
	"fmt"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Signer produces armored detached signatures over baseline blobs
type Signer struct {
	entity *openpgp.Entity
}

// NewSigner creates a signer from an entity holding a decrypted private key
func NewSigner(entity *openpgp.Entity) (*Signer, error) {
	if entity == nil || entity.PrivateKey == nil {
		return nil, fmt.Errorf("signing key has no private key")
	}
	if entity.PrivateKey.Encrypted {
		return nil, fmt.Errorf("signing key is encrypted")
	}
	return &Signer{entity: entity}, nil
}

// NewSignerFromFile loads the first private key of keyPath, decrypting it
// with passphrase when it is protected
func NewSignerFromFile(keyPath string, passphrase []byte) (*Signer, error) {
	entities, err := readKeyFile(keyPath)
	if err != nil {
		return nil, err
	}

	for _, entity := range entities {
		if entity.PrivateKey == nil {
			continue
		}
		if err := decrypt(entity, passphrase); err != nil {
			return nil, err
		}
		return NewSigner(entity)
	}
	return nil, fmt.Errorf("no private key found in %s", keyPath)
}

func decrypt(entity *openpgp.Entity, passphrase []byte) error {
	if entity.PrivateKey.Encrypted {
		if len(passphrase) == 0 {
			return fmt.Errorf("signing key is encrypted and no passphrase was configured")
		}
		if err := entity.PrivateKey.Decrypt(passphrase); err != nil {
			return fmt.Errorf("failed to decrypt signing key: %w", err)
		}
	}
	for _, sub := range entity.Subkeys {
		if sub.PrivateKey != nil && sub.PrivateKey.Encrypted {
			if err := sub.PrivateKey.Decrypt(passphrase); err != nil {
				return fmt.Errorf("failed to decrypt signing subkey: %w", err)
			}
		}
	}
	return nil
}

// Sign returns an armored detached signature over blob
func (s *Signer) Sign(blob string) (string, error) {
	var out strings.Builder
	if err := openpgp.ArmoredDetachSign(&out, s.entity, strings.NewReader(blob), nil); err != nil {
		return "", fmt.Errorf("failed to sign baseline: %w", err)
	}
	return out.String(), nil
}
