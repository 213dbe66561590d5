package storage

import (
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"
)

// Slot marshals one collection into a named slot of a Store. It implements
// the persistence contract the stores rely on: Load never fails (missing or
// corrupt data yields an empty collection) and Save swallows write errors
// after logging them, because in-memory state is authoritative for the
// session and persistence is best-effort crash recovery.
type Slot[T any] struct {
	store  Store
	key    string
	logger *zap.Logger
}

// NewSlot binds a typed slot to a key within the given medium.
func NewSlot[T any](store Store, key string, logger *zap.Logger) (*Slot[T], error) {
	if store == nil {
		return nil, errors.New("storage: slot requires a store")
	}
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("storage: slot requires a key")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Slot[T]{store: store, key: key, logger: logger}, nil
}

// Load returns the persisted collection. Any failure — absent slot, unusable
// medium, malformed JSON — is treated as empty state, never an error.
func (s *Slot[T]) Load() []T {
	if s == nil || s.store == nil {
		return nil
	}

	data, err := s.store.Get(s.key)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			s.logger.Warn("slot read failed, starting empty",
				zap.String("slot", s.key),
				zap.Error(err),
			)
		}
		return nil
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		s.logger.Warn("slot contents malformed, starting empty",
			zap.String("slot", s.key),
			zap.Error(err),
		)
		return nil
	}
	return items
}

// Save serialises and writes the collection. Write failures (quota, medium
// unavailable) are logged and dropped; the caller's in-memory state stands.
func (s *Slot[T]) Save(items []T) {
	if s == nil || s.store == nil {
		return
	}
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("slot encode failed",
			zap.String("slot", s.key),
			zap.Error(err),
		)
		return
	}
	if err := s.store.Set(s.key, data); err != nil {
		s.logger.Warn("slot write failed, in-memory state kept",
			zap.String("slot", s.key),
			zap.Error(err),
		)
	}
}

// Clear removes the slot contents, logging failures like Save.
func (s *Slot[T]) Clear() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Delete(s.key); err != nil {
		s.logger.Warn("slot clear failed",
			zap.String("slot", s.key),
			zap.Error(err),
		)
	}
}
