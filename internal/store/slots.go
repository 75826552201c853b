package store

import (
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// Slots is the storage a tracker store needs: whole-value reads and writes of
// named slots. *Store implements it.
type Slots interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// readSlot decodes the JSON value at key into v and reports whether it did.
// Missing and malformed values leave the caller on its defaults; malformed
// ones are logged, never returned.
func readSlot(s Slots, log *zap.SugaredLogger, key string, v any) (bool, error) {
	raw, ok, err := s.Get(key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Warnw("discarding malformed slot", "slot", key, "error", err)
		return false, nil
	}
	return true, nil
}

func writeSlot(s Slots, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return s.Put(key, string(data))
}

func orNop(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log == nil {
		return zap.NewNop().Sugar()
	}
	return log
}
