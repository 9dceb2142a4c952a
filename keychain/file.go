package keychain

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

var _ Store = (*FileStore)(nil)

// FileStore keeps each item in its own file under dir, sealed with
// XChaCha20-Poly1305. The key name is bound to the ciphertext as associated
// data so files cannot be swapped between keys.
type FileStore struct {
	dir string
	key []byte
}

// NewFileStore creates dir if needed. key must be chacha20poly1305.KeySize bytes.
func NewFileStore(dir string, key []byte) (*FileStore, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, errors.Errorf("[keychain.NewFileStore] key must be %d bytes", chacha20poly1305.KeySize)
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return nil, errors.Wrap(err, "[keychain.NewFileStore] os.MkdirAll")
	}
	return &FileStore{dir: dir, key: append([]byte(nil), key...)}, nil
}

// DeriveKey stretches a passphrase into a FileStore key with argon2id.
func DeriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, chacha20poly1305.KeySize)
}

func (s *FileStore) path(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(sum[:]))
}

func (s *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	sealed, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "[FileStore.Get] os.ReadFile")
	}

	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return nil, errors.Wrap(err, "[FileStore.Get] chacha20poly1305.NewX")
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("[FileStore.Get] item truncated")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	plain, err := aead.Open(nil, nonce, ciphertext, []byte(key))
	if err != nil {
		return nil, errors.Wrap(err, "[FileStore.Get] aead.Open")
	}
	return plain, nil
}

func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	aead, err := chacha20poly1305.NewX(s.key)
	if err != nil {
		return errors.Wrap(err, "[FileStore.Set] chacha20poly1305.NewX")
	}
	nonce := make([]byte, aead.NonceSize(), aead.NonceSize()+len(value)+aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return errors.Wrap(err, "[FileStore.Set] rand.Read")
	}
	sealed := aead.Seal(nonce, nonce, value, []byte(key))

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, sealed, fileMode); err != nil {
		return errors.Wrap(err, "[FileStore.Set] os.WriteFile")
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return errors.Wrap(err, "[FileStore.Set] os.Rename")
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return errors.Wrap(err, "[FileStore.Delete] os.Remove")
	}
	return nil
}
