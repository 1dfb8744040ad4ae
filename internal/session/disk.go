package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"telekom-gateway/pkg/logger"
)

const storeFile = "session.json"

// DiskStore keeps a small key/value document on disk, the credential under
// TokenKey. Unrelated keys written by other tools are preserved.
type DiskStore struct {
	dataDir string
	mu      sync.RWMutex
	values  map[string]string
}

func NewDiskStore(dataDir string) *DiskStore {
	return &DiskStore{
		dataDir: dataDir,
		values:  make(map[string]string),
	}
}

func (d *DiskStore) path() string {
	return filepath.Join(d.dataDir, storeFile)
}

func (d *DiskStore) Init() error {
	if err := os.MkdirAll(d.dataDir, 0o700); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreInit, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := os.ReadFile(d.path())
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreInit, err)
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		logger.Warnf("Discarding unreadable session file %s: %v", d.path(), err)
		return nil
	}
	d.values = values

	logger.Debugf("Session store loaded from %s", d.path())
	return nil
}

func (d *DiskStore) Close() error {
	return nil
}

func (d *DiskStore) Get() (string, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	token := d.values[TokenKey]
	return token, token != ""
}

func (d *DiskStore) Set(token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	prev, had := d.values[TokenKey]
	d.values[TokenKey] = token
	if err := d.persist(); err != nil {
		if had {
			d.values[TokenKey] = prev
		} else {
			delete(d.values, TokenKey)
		}
		return err
	}
	return nil
}

func (d *DiskStore) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.values[TokenKey]; !ok {
		return nil
	}
	delete(d.values, TokenKey)
	return d.persist()
}

// persist must be called with d.mu held.
func (d *DiskStore) persist() error {
	data, err := json.MarshalIndent(d.values, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}

	path := d.path()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrFileOperation, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if runtime.GOOS == "windows" {
			_ = os.Remove(path)
			err = os.Rename(tmp, path)
		}
		if err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("%w: %v", ErrFileOperation, err)
		}
	}
	return nil
}
