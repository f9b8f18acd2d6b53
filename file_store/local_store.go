package file_store

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes uploads under a directory served as static files by the
// hosting web server.
type LocalStore struct {
	dir     string
	baseURL string
}

func NewLocalStore(dir, baseURL string) *LocalStore {
	if dir == "" {
		dir = "uploads"
	}
	if baseURL == "" {
		baseURL = "/uploads"
	}
	return &LocalStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

func (s *LocalStore) Save(r io.Reader, key string) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return s.GetUrlFromKey(key), nil
}

func (s *LocalStore) Delete(key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *LocalStore) GetUrlFromKey(key string) string {
	return s.baseURL + "/" + key
}
