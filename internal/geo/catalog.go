// Package geo loads the clickable regions of the Europe map.
package geo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/euroexplorer-bot/internal/domain/entities"
)

// DefaultTopologyURL is the Highcharts Europe map.
const DefaultTopologyURL = "https://code.highcharts.com/mapdata/custom/europe.topo.json"

const maxTopologySize = 16 << 20

var (
	ErrRegionNotFound = errors.New("region not found")
	ErrEmptyCatalog   = errors.New("topology has no regions")
)

// Catalog memoises the regions of a remote topology file.
type Catalog struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger

	mu        sync.RWMutex
	regions   []entities.Region
	byID      map[string]entities.Region
	fetchedAt time.Time
}

// NewCatalog creates a catalog for the topology at url.
func NewCatalog(url string, httpClient *http.Client, logger *zap.Logger) *Catalog {
	if url == "" {
		url = DefaultTopologyURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	return &Catalog{
		url:        url,
		httpClient: httpClient,
		logger:     logger,
	}
}

// Regions returns all regions, loading the topology on first use.
func (c *Catalog) Regions(ctx context.Context) ([]entities.Region, error) {
	c.mu.RLock()
	regions := c.regions
	c.mu.RUnlock()

	if regions != nil {
		return regions, nil
	}

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.regions, nil
}

// Lookup returns the region with the given key.
func (c *Catalog) Lookup(ctx context.Context, id string) (entities.Region, error) {
	if _, err := c.Regions(ctx); err != nil {
		return entities.Region{}, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	r, ok := c.byID[id]
	if !ok {
		return entities.Region{}, ErrRegionNotFound
	}
	return r, nil
}

// Find returns the region whose display name or key matches name, ignoring case.
func (c *Catalog) Find(ctx context.Context, name string) (entities.Region, error) {
	regions, err := c.Regions(ctx)
	if err != nil {
		return entities.Region{}, err
	}

	name = strings.TrimSpace(name)
	for _, r := range regions {
		if strings.EqualFold(r.Name(), name) || strings.EqualFold(r.Properties.Key, name) {
			return r, nil
		}
	}
	return entities.Region{}, ErrRegionNotFound
}

// Refresh downloads the topology again. On failure the previous regions are kept.
func (c *Catalog) Refresh(ctx context.Context) error {
	regions, err := c.fetch(ctx)
	if err != nil {
		return err
	}

	byID := make(map[string]entities.Region, len(regions))
	for _, r := range regions {
		byID[regionID(r.Properties)] = r
	}

	c.mu.Lock()
	c.regions = regions
	c.byID = byID
	c.fetchedAt = time.Now()
	c.mu.Unlock()

	c.logger.Info("map catalog loaded",
		zap.String("url", c.url),
		zap.Int("regions", len(regions)),
	)

	return nil
}

// FetchedAt returns when the catalog was last loaded.
func (c *Catalog) FetchedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetchedAt
}

func (c *Catalog) fetch(ctx context.Context) ([]entities.Region, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build topology request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("topology request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("topology request: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTopologySize))
	if err != nil {
		return nil, fmt.Errorf("read topology: %w", err)
	}

	regions, err := ParseRegions(data)
	if err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return nil, ErrEmptyCatalog
	}

	return regions, nil
}

// RegionID returns the identifier used to look a region up.
func RegionID(r entities.Region) string {
	return regionID(r.Properties)
}
