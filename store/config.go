package store

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
)

// Recognized config keys.
const (
	ConfigMaxRetries  = "max_retries"
	ConfigBackoffBase = "backoff_base"
)

var configDefaults = map[string]string{
	ConfigMaxRetries:  "3",
	ConfigBackoffBase: "2",
}

// ConfigGet returns the value for key, falling back to the documented
// default for recognized keys if no row has been set.
func (s *Store) ConfigGet(ctx context.Context, key string) (string, error) {
	var m configModel
	err := s.db.NewSelect().Model(&m).Where("key = ?", key).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			if def, ok := configDefaults[key]; ok {
				return def, nil
			}
			return "", ErrNotFound
		}
		return "", err
	}
	return m.Value, nil
}

// ConfigSet upserts key to value.
func (s *Store) ConfigSet(ctx context.Context, key, value string) error {
	m := &configModel{Key: key, Value: value}
	_, err := s.db.NewInsert().
		Model(m).
		On("CONFLICT (key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}

func (s *Store) configGetUint32(ctx context.Context, key string) (uint32, error) {
	v, err := s.ConfigGet(ctx, key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(v, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
