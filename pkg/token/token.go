package token

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Zlobinnn/home-viewer/pkg/customerror"
	"github.com/google/uuid"
)

// Store keeps the opaque client identity token the rating endpoint keys on.
// The token is generated once and persisted, same as the browser client
// keeping it in local storage: there is no account behind it, it is only a
// correlation key. Clear is the "log out" equivalent and touches nothing
// server-side.
type Store struct {
	path string
	mu   sync.Mutex
}

func NewStore(path string) (*Store, error) {
	if path == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, customerror.NewError("token.NewStore", "", err.Error())
		}
		path = filepath.Join(configDir, "home-viewer", "token")
	}
	return &Store{path: path}, nil
}

// Get returns the persisted token, creating and saving a fresh one on first use.
func (store *Store) Get() (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	data, err := os.ReadFile(store.path)
	if err == nil {
		saved := strings.TrimSpace(string(data))
		if saved != "" {
			return saved, nil
		}
	} else if !os.IsNotExist(err) {
		return "", customerror.NewError("token.Get", "", err.Error())
	}
	fresh := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(store.path), 0755); err != nil {
		return "", customerror.NewError("token.Get", "", err.Error())
	}
	if err := os.WriteFile(store.path, []byte(fresh), 0600); err != nil {
		return "", customerror.NewError("token.Get", "", err.Error())
	}
	return fresh, nil
}

func (store *Store) Clear() error {
	store.mu.Lock()
	defer store.mu.Unlock()
	err := os.Remove(store.path)
	if err != nil && !os.IsNotExist(err) {
		return customerror.NewError("token.Clear", "", err.Error())
	}
	return nil
}
