// package storage implements the durable key-value bridge the session and favorites stores persist through
package storage

import (
	"context"
	"fmt"

	"github.com/desertthunder/friendbook/internal/shared"
)

// Bridge is a durable string key-value store.
//
// Get reports found=false for absent keys; Remove of an absent key is not an error.
type Bridge interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Open builds the [Bridge] selected by cfg.Backend.
func Open(cfg shared.StorageConfig, dbCfg shared.DatabaseConfig) (Bridge, error) {
	switch cfg.Backend {
	case "memory":
		return NewMemoryBridge(), nil
	case "sqlite":
		db, err := shared.NewDatabase(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrStorage, err)
		}
		shared.ConfigureDatabase(db, dbCfg.MaxOpenConns, dbCfg.MaxIdleConns)
		return NewSQLiteBridge(db, true), nil
	case "bolt":
		return NewBoltBridge(cfg.Path)
	case "redis":
		return DialRedis(cfg.RedisAddr, cfg.RedisDB, cfg.Prefix)
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownBackend, cfg.Backend)
	}
}

func storageErr(op, key string, err error) error {
	return fmt.Errorf("%w: %s %q: %v", shared.ErrStorage, op, key, err)
}
