package cache

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/logger"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheClient caches formatted report text per user and report kind.
type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{mc}, mc.Ping()
}

func formatKey(username, kind string) string {
	return username + ":" + kind
}

func (mc *MemcacheClient) CacheReport(username, kind, report string) error {
	logger.Info("cache report", zap.String("username", username), zap.String("kind", kind))
	return mc.client.Set(&memcache.Item{
		Key:   formatKey(username, kind),
		Value: []byte(report)},
	)
}

func (mc *MemcacheClient) GetReport(username, kind string) (string, error) {
	item, err := mc.client.Get(formatKey(username, kind))
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

func (mc *MemcacheClient) InvalidateCache(username string, kinds []string) error {
	logger.Info("invalidate report cache", zap.String("username", username))

	for _, kind := range kinds {
		err := mc.client.Delete(formatKey(username, kind))
		if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
			return err
		}
	}
	return nil
}
