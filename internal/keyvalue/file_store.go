package keyvalue

import (
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"

	apperrors "github.com/yoomoney/checkout/internal/errors"
)

// fileEntry is one encrypted value in the store file.
type fileEntry struct {
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// fileFormat is the on-disk layout of the store.
type fileFormat struct {
	Entries map[string]fileEntry `json:"entries"`
}

// FileStore is a Store persisted to a single file with every value encrypted
// at rest using ChaCha20-Poly1305. The entry's key name is bound to its
// ciphertext as additional authenticated data, so entries cannot be swapped
// between keys by editing the file. Safe for concurrent use within one
// process; the file is rewritten atomically on every mutation.
type FileStore struct {
	mu      sync.Mutex
	path    string
	aead    cipher.AEAD
	entries map[string]fileEntry
}

// NewFileStore opens or creates an encrypted store at path. The key must be
// exactly 32 bytes.
func NewFileStore(path string, key []byte) (*FileStore, error) {
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create cipher")
	}

	store := &FileStore{
		path:    path,
		aead:    aead,
		entries: make(map[string]fileEntry),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return store, nil
		}
		return nil, apperrors.Wrap(err, "failed to read store file")
	}

	var format fileFormat
	if err := json.Unmarshal(data, &format); err != nil {
		return nil, apperrors.Wrap(err, "failed to parse store file")
	}
	if format.Entries != nil {
		store.entries = format.Entries
	}
	return store, nil
}

// GetString returns the stored string and whether the key was present.
// A value that fails decryption is treated as absent.
func (f *FileStore) GetString(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, ok := f.entries[key]
	if !ok {
		return "", false
	}

	plaintext, err := f.decrypt(key, entry)
	if err != nil {
		return "", false
	}
	return string(plaintext), true
}

// SetString stores a string value and persists the file.
func (f *FileStore) SetString(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, err := f.encrypt(key, []byte(value))
	if err != nil {
		return err
	}
	f.entries[key] = entry
	return f.persist()
}

// GetBool returns the stored boolean and whether the key was present.
func (f *FileStore) GetBool(key string) (bool, bool) {
	value, ok := f.GetString(key)
	if !ok {
		return false, false
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}
	return parsed, true
}

// SetBool stores a boolean value and persists the file.
func (f *FileStore) SetBool(key string, value bool) error {
	return f.SetString(key, strconv.FormatBool(value))
}

// Delete removes a key and persists the file.
func (f *FileStore) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.entries[key]; !ok {
		return nil
	}
	delete(f.entries, key)
	return f.persist()
}

// encrypt seals plaintext with a fresh nonce, binding the key name as AAD.
func (f *FileStore) encrypt(key string, plaintext []byte) (fileEntry, error) {
	nonce := make([]byte, f.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fileEntry{}, apperrors.Wrap(err, "failed to generate nonce")
	}

	ciphertext := f.aead.Seal(nil, nonce, plaintext, []byte(key))
	return fileEntry{
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// decrypt opens an entry, verifying the key-name AAD.
func (f *FileStore) decrypt(key string, entry fileEntry) ([]byte, error) {
	nonce, err := base64.StdEncoding.DecodeString(entry.Nonce)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode nonce")
	}
	ciphertext, err := base64.StdEncoding.DecodeString(entry.Ciphertext)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to decode ciphertext")
	}
	return f.aead.Open(nil, nonce, ciphertext, []byte(key))
}

// persist writes the store file atomically. Caller must hold the mutex.
func (f *FileStore) persist() error {
	data, err := json.MarshalIndent(fileFormat{Entries: f.entries}, "", "  ")
	if err != nil {
		return apperrors.Wrap(err, "failed to encode store file")
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".store-*")
	if err != nil {
		return apperrors.Wrap(err, "failed to create temp store file")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return apperrors.Wrap(err, "failed to set store file permissions")
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return apperrors.Wrap(err, "failed to write store file")
	}
	if err := tmp.Close(); err != nil {
		return apperrors.Wrap(err, "failed to close store file")
	}

	return os.Rename(tmp.Name(), f.path)
}
