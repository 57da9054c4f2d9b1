package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"go.uber.org/zap"

	"rhystmorgan/regform/internal/models"
)

const (
	appDir = ".regform"

	// RegisterKey is the key the submitted registration is stored under
	RegisterKey = "register"
)

var (
	ErrNotFound   = errors.New("key not found")
	ErrInvalidKey = errors.New("invalid storage key")

	keyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)
)

// Storage is a small key/value store keeping one JSON file per key
type Storage struct {
	dataDir    string
	passphrase string
	logger     *zap.Logger
}

type Option func(*Storage)

// WithPassphrase encrypts stored registrations with the given passphrase
func WithPassphrase(passphrase string) Option {
	return func(s *Storage) {
		s.passphrase = passphrase
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Storage) {
		if logger != nil {
			s.logger = logger.Named("storage")
		}
	}
}

// sealedRecord is the on-disk form of an encrypted registration
type sealedRecord struct {
	Encrypted *EncryptedData `json:"encrypted"`
}

// DefaultDataDir returns ~/.regform
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, appDir), nil
}

func NewStorage(dataDir string, opts ...Option) (*Storage, error) {
	if dataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = dir
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{dataDir: dataDir, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) Encrypted() bool {
	return s.passphrase != ""
}

func (s *Storage) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dataDir, key+".json"), nil
}

// Set replaces the value stored under key. The file is written next to its
// final location and renamed into place.
func (s *Storage) Set(key string, value []byte) error {
	filePath, err := s.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dataDir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions on %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", key, err)
	}

	if err := os.Rename(tmp.Name(), filePath); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}

	s.logger.Debug("stored value", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (s *Storage) Get(key string) ([]byte, error) {
	filePath, err := s.path(key)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return data, nil
}

func (s *Storage) Delete(key string) error {
	filePath, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// SaveRegistration stores the record under RegisterKey, replacing any
// previous submission
func (s *Storage) SaveRegistration(record models.RegistrationRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registration: %w", err)
	}

	if s.passphrase != "" {
		encData, err := Encrypt(data, s.passphrase)
		if err != nil {
			return fmt.Errorf("failed to encrypt registration: %w", err)
		}
		data, err = json.MarshalIndent(sealedRecord{Encrypted: encData}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal encrypted registration: %w", err)
		}
	}

	return s.Set(RegisterKey, data)
}

func (s *Storage) LoadRegistration() (*models.RegistrationRecord, error) {
	data, err := s.Get(RegisterKey)
	if err != nil {
		return nil, err
	}

	var sealed sealedRecord
	if err := json.Unmarshal(data, &sealed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registration: %w", err)
	}

	if sealed.Encrypted != nil {
		data, err = Decrypt(sealed.Encrypted, s.passphrase)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt registration: %w", err)
		}
	}

	var record models.RegistrationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal registration: %w", err)
	}

	return &record, nil
}
