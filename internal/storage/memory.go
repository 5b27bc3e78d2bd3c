package storage

import "sync"

const noAcceptedNumber int64 = -1

type MemoryStorage struct {
	highestPromised int64
	acceptedNumber  int64
	acceptedValue   string
	mu              sync.RWMutex
}

var _ Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{acceptedNumber: noAcceptedNumber}
}

func (m *MemoryStorage) SavePromised(number int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highestPromised = number
	return nil
}

func (m *MemoryStorage) LoadPromised() (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.highestPromised, nil
}

func (m *MemoryStorage) SaveAccepted(number int64, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acceptedNumber = number
	m.acceptedValue = value
	return nil
}

func (m *MemoryStorage) LoadAccepted() (int64, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.acceptedNumber, m.acceptedValue, nil
}

func (m *MemoryStorage) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.highestPromised = 0
	m.acceptedNumber = noAcceptedNumber
	m.acceptedValue = ""
}
