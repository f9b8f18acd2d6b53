package file_store

import (
	"io"
	"sync"
)

// FakeStore keeps uploads in memory. Test only.
type FakeStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewFakeStore() *FakeStore {
	return &FakeStore{files: map[string][]byte{}}
}

func (s *FakeStore) Save(r io.Reader, key string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[key] = data
	return s.GetUrlFromKey(key), nil
}

func (s *FakeStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

func (s *FakeStore) GetUrlFromKey(key string) string {
	return "fake://" + key
}

// Has reports whether key is currently stored. Assertion helper.
func (s *FakeStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.files[key]
	return ok
}
