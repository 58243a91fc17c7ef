package champion

import (
	"context"

	"go.uber.org/zap"
)

// Provider assembles the champion registry at startup: resolve the latest
// Data Dragon version, prefer the cache, fetch and cache on a miss. With the
// CDN unreachable it falls back to the last cached table so the bot can still
// draft offline-ish.
type Provider struct {
	DD    *DataDragon
	Cache *Cache // nil disables caching
	Log   *zap.Logger
}

// Registry builds the name -> id registry.
func (p *Provider) Registry(ctx context.Context) (*Registry, error) {
	version, err := p.DD.LatestVersion(ctx)
	if err != nil {
		if p.Cache == nil {
			return nil, err
		}
		cached, cerr := p.Cache.LatestVersion(ctx)
		if cerr != nil || cached == "" {
			return nil, err
		}
		p.Log.Warn("version lookup failed, falling back to cached version",
			zap.String("version", cached), zap.Error(err))
		version = cached
	}

	if p.Cache != nil {
		table, err := p.Cache.Table(ctx, version)
		if err != nil {
			p.Log.Warn("champion cache read failed", zap.Error(err))
		} else if table != nil {
			p.Log.Info("champion table loaded from cache",
				zap.String("version", version), zap.Int("names", len(table)))
			return NewRegistry(table), nil
		}
	}

	table, err := p.DD.FetchTable(ctx, version)
	if err != nil {
		return nil, err
	}
	if p.Cache != nil {
		if err := p.Cache.SaveTable(ctx, version, table); err != nil {
			p.Log.Warn("champion cache write failed", zap.Error(err))
		}
	}
	p.Log.Info("champion table fetched",
		zap.String("version", version), zap.Int("names", len(table)))
	return NewRegistry(table), nil
}
