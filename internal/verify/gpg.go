package verify

import (
	"fmt"
	"io"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// GPGVerifier checks a detached signature against an artifact using a
// caller-supplied keyring. This is a supplementary check on top of
// attestation verification; the pipeline treats every failure here as a
// warning.
type GPGVerifier struct {
	keyringPath string
}

// NewGPGVerifier creates a verifier around an armored or binary keyring
// file.
func NewGPGVerifier(keyringPath string) *GPGVerifier {
	return &GPGVerifier{keyringPath: keyringPath}
}

// VerifyDetached checks signaturePath against filePath. Armored signatures
// are tried first, then the binary format.
func (v *GPGVerifier) VerifyDetached(filePath, signaturePath string) error {
	keyring, err := v.loadKeyring()
	if err != nil {
		return fmt.Errorf("load keyring: %w", err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	sig, err := os.Open(signaturePath)
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sig.Close()

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, file, sig, nil)
	if err != nil {
		file.Seek(0, io.SeekStart)
		sig.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, file, sig, nil)
	}
	if err != nil {
		return fmt.Errorf("check signature: %w", err)
	}

	return nil
}

// loadKeyring reads the keyring file, accepting armored and binary forms.
func (v *GPGVerifier) loadKeyring() (openpgp.EntityList, error) {
	file, err := os.Open(v.keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer file.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(file)
	if err != nil {
		file.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(file)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring %s is empty", v.keyringPath)
	}

	return keyring, nil
}
