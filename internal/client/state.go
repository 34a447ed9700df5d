package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"storefront/internal/cart"
)

// State keys. The cart is kept as its serialized array form.
const (
	keyToken = "token"
	keyCart  = "cart"
)

// State is the CLI's persisted session: the auth token and the cart.
type State struct {
	v    *viper.Viper
	path string
}

// DefaultStatePath is ~/.shopctl/state.json, or a file in the working
// directory when the home directory is unknown.
func DefaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".shopctl.json"
	}
	return filepath.Join(home, ".shopctl", "state.json")
}

// LoadState reads path if it exists. A missing file yields an empty state.
func LoadState(path string) (*State, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read state %s: %w", path, err)
	}
	return &State{v: v, path: path}, nil
}

func (s *State) Token() string { return s.v.GetString(keyToken) }

func (s *State) SetToken(token string) { s.v.Set(keyToken, token) }

// Cart rebuilds the cart from its stored array. A corrupt entry yields an empty cart.
func (s *State) Cart() *cart.Cart {
	c, err := cart.Unmarshal([]byte(s.v.GetString(keyCart)))
	if err != nil {
		return cart.New()
	}
	return c
}

func (s *State) SetCart(c *cart.Cart) error {
	data, err := c.MarshalJSON()
	if err != nil {
		return err
	}
	s.v.Set(keyCart, string(data))
	return nil
}

// Save writes the state back to disk.
func (s *State) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write state %s: %w", s.path, err)
	}
	return nil
}
