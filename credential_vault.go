package main

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/zalando/go-keyring"
)

const (
	credKeyringService = "walnut"
	credKeyringUser    = "credentials-vault"
)

// Credential holds the basic-auth login used when loading a protected
// origin in the inspected WebView.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialVault keeps per-origin logins encrypted on disk, with the
// encryption key held in the OS keyring when one is available.
type CredentialVault struct {
	dir            string
	keyPath        string
	dataPath       string
	key            []byte
	keySource      string
	mu             sync.Mutex
	keyringService string
	keyringUser    string
}

func NewCredentialVault(dir string) (*CredentialVault, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &CredentialVault{
		dir:            dir,
		keyPath:        filepath.Join(dir, ".vault.key"),
		dataPath:       filepath.Join(dir, "credentials.vault.json"),
		keyringService: credKeyringService,
		keyringUser:    credKeyringUser,
	}, nil
}

// ListOrigins returns every origin with a stored credential, sorted.
func (cv *CredentialVault) ListOrigins() ([]string, error) {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	creds, err := cv.loadLocked()
	if err != nil {
		return nil, err
	}
	origins := make([]string, 0, len(creds))
	for origin := range creds {
		origins = append(origins, origin)
	}
	sort.Strings(origins)
	return origins, nil
}

// Store saves the credential for an origin, replacing any existing one.
func (cv *CredentialVault) Store(origin string, cred Credential) error {
	cleaned, err := normalizeOrigin(origin)
	if err != nil {
		return err
	}
	if strings.TrimSpace(cred.Username) == "" {
		return errors.New("username cannot be empty")
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()

	creds, err := cv.loadLocked()
	if err != nil {
		return err
	}
	creds[cleaned] = cred
	return cv.saveLocked(creds)
}

// Get returns the stored credential for an origin.
func (cv *CredentialVault) Get(origin string) (Credential, error) {
	cleaned, err := normalizeOrigin(origin)
	if err != nil {
		return Credential{}, err
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()

	creds, err := cv.loadLocked()
	if err != nil {
		return Credential{}, err
	}
	if cred, ok := creds[cleaned]; ok {
		return cred, nil
	}
	return Credential{}, fmt.Errorf("no credential stored for %s", cleaned)
}

// Remove deletes the credential for an origin, if present.
func (cv *CredentialVault) Remove(origin string) error {
	cleaned, err := normalizeOrigin(origin)
	if err != nil {
		return err
	}

	cv.mu.Lock()
	defer cv.mu.Unlock()

	creds, err := cv.loadLocked()
	if err != nil {
		return err
	}
	delete(creds, cleaned)
	return cv.saveLocked(creds)
}

// Reset wipes the vault, including the stored key.
func (cv *CredentialVault) Reset() error {
	cv.mu.Lock()
	defer cv.mu.Unlock()

	_ = os.Remove(cv.dataPath)
	_ = os.Remove(cv.keyPath)
	if cv.keyringService != "" && cv.keyringUser != "" {
		_ = keyring.Delete(cv.keyringService, cv.keyringUser)
	}
	cv.key = nil
	cv.keySource = ""
	return nil
}

func (cv *CredentialVault) loadLocked() (map[string]Credential, error) {
	data, err := os.ReadFile(cv.dataPath)
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]Credential), nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return make(map[string]Credential), nil
	}

	if err := cv.ensureKeyLocked(false); err != nil {
		return nil, err
	}
	if len(cv.key) == 0 {
		return nil, errors.New("vault key missing")
	}

	plaintext, err := cv.decrypt(data)
	if err != nil {
		return nil, err
	}

	var creds map[string]Credential
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, err
	}
	if creds == nil {
		creds = make(map[string]Credential)
	}
	return creds, nil
}

func (cv *CredentialVault) saveLocked(creds map[string]Credential) error {
	if creds == nil {
		creds = make(map[string]Credential)
	}
	if err := cv.ensureKeyLocked(true); err != nil {
		return err
	}

	plaintext, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	ciphertext, err := cv.encrypt(plaintext)
	if err != nil {
		return err
	}

	tempFile := cv.dataPath + ".tmp"
	if err := os.WriteFile(tempFile, ciphertext, 0o600); err != nil {
		return err
	}
	return os.Rename(tempFile, cv.dataPath)
}

func (cv *CredentialVault) ensureKeyLocked(create bool) error {
	if len(cv.key) == 32 {
		return nil
	}
	if keyringBytes, err := cv.readKeyring(); err == nil {
		cv.key = keyringBytes
		cv.keySource = "keyring"
		return nil
	}
	data, err := os.ReadFile(cv.keyPath)
	if err == nil {
		decoded, decodeErr := base64.StdEncoding.DecodeString(strings.TrimSpace(string(data)))
		if decodeErr != nil {
			return decodeErr
		}
		if len(decoded) != 32 {
			return errors.New("vault key has invalid length")
		}
		cv.key = decoded
		cv.keySource = "file"
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if !create {
		return nil
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return err
	}
	encoded := base64.StdEncoding.EncodeToString(keyBytes)
	if err := cv.writeKeyring(encoded); err == nil {
		cv.keySource = "keyring"
	}
	if err := os.WriteFile(cv.keyPath, []byte(encoded), 0o600); err != nil {
		return err
	}
	cv.key = keyBytes
	if cv.keySource == "" {
		cv.keySource = "file"
	}
	return nil
}

func (cv *CredentialVault) readKeyring() ([]byte, error) {
	if cv.keyringService == "" || cv.keyringUser == "" {
		return nil, errors.New("keyring disabled")
	}
	value, err := keyring.Get(cv.keyringService, cv.keyringUser)
	if err != nil {
		return nil, err
	}
	decoded, decodeErr := base64.StdEncoding.DecodeString(strings.TrimSpace(value))
	if decodeErr != nil {
		return nil, decodeErr
	}
	if len(decoded) != 32 {
		return nil, errors.New("invalid key length from keyring")
	}
	return decoded, nil
}

func (cv *CredentialVault) writeKeyring(value string) error {
	if cv.keyringService == "" || cv.keyringUser == "" {
		return errors.New("keyring disabled")
	}
	return keyring.Set(cv.keyringService, cv.keyringUser, value)
}

func (cv *CredentialVault) encrypt(plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(cv.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return ciphertext, nil
}

func (cv *CredentialVault) decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(cv.key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonceSize := gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errors.New("ciphertext too short")
	}
	nonce := ciphertext[:nonceSize]
	payload := ciphertext[nonceSize:]
	return gcm.Open(nil, nonce, payload, nil)
}

// normalizeOrigin reduces the input to scheme://host and rejects anything
// that does not parse as an absolute URL.
func normalizeOrigin(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", errors.New("origin cannot be empty")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid origin: %s", trimmed)
	}
	return parsed.Scheme + "://" + parsed.Host, nil
}
