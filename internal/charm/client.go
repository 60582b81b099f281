// ABOUTME: Charm KV client wrapper for a cloud-synced run ledger
// ABOUTME: Stores run records as JSON under run: keys with SSH key auth
package charm

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/samber/mo"

	"github.com/harper/abmodel/internal/models"
)

// RunPrefix namespaces run records in the KV store
const RunPrefix = "run:"

// Config holds charm client configuration
type Config struct {
	Host     string
	DBName   string
	AutoSync bool
}

// Client wraps charm KV for ledger operations
type Client struct {
	kv     *kv.KV
	config Config
	mu     sync.Mutex
}

// NewClient opens the KV database named in cfg
func NewClient(cfg Config) (*Client, error) {
	// kv reads the server from the environment
	if err := os.Setenv("CHARM_HOST", cfg.Host); err != nil {
		return nil, fmt.Errorf("failed to set CHARM_HOST: %w", err)
	}

	db, err := kv.OpenWithDefaults(cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
	}

	// Pull remote data on startup
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// Close closes the KV database
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv != nil {
		err := c.kv.Close()
		c.kv = nil
		return err
	}
	return nil
}

// Host returns the configured charm server
func (c *Client) Host() string {
	return c.config.Host
}

// AutoSync reports whether writes are pushed immediately
func (c *Client) AutoSync() bool {
	return c.config.AutoSync
}

// syncIfEnabled syncs to cloud after writes
func (c *Client) syncIfEnabled() {
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
}

// ID returns the charm user ID
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// Sync manually triggers a sync with the cloud
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// SaveRun stores run as JSON
func (c *Client) SaveRun(run *models.RunRecord) error {
	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(RunKey(run.RunID)), data); err != nil {
		return fmt.Errorf("failed to set run %s: %w", run.RunID, err)
	}
	c.syncIfEnabled()
	return nil
}

// GetRun retrieves a run by ID
func (c *Client) GetRun(runID string) (mo.Option[*models.RunRecord], error) {
	c.mu.Lock()
	data, err := c.kv.Get([]byte(RunKey(runID)))
	c.mu.Unlock()

	return decodeRun(runID, data, err)
}

// decodeRun turns a kv lookup into a run. Only a missing key is reported as None.
func decodeRun(runID string, data []byte, getErr error) (mo.Option[*models.RunRecord], error) {
	if errors.Is(getErr, badger.ErrKeyNotFound) {
		return mo.None[*models.RunRecord](), nil
	}
	if getErr != nil {
		return mo.None[*models.RunRecord](), fmt.Errorf("failed to get run %s: %w", runID, getErr)
	}
	if data == nil {
		return mo.None[*models.RunRecord](), nil
	}

	var run models.RunRecord
	if err := json.Unmarshal(data, &run); err != nil {
		return mo.None[*models.RunRecord](), fmt.Errorf("failed to decode run %s: %w", runID, err)
	}
	return mo.Some(&run), nil
}

// ListRuns returns up to limit runs, newest first
func (c *Client) ListRuns(limit int) ([]models.RunRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	var runs []models.RunRecord
	for _, key := range keys {
		if !strings.HasPrefix(string(key), RunPrefix) {
			continue
		}
		runID := strings.TrimPrefix(string(key), RunPrefix)
		data, err := c.kv.Get(key)
		found, err := decodeRun(runID, data, err)
		if err != nil {
			return nil, err
		}
		if run, ok := found.Get(); ok {
			runs = append(runs, *run)
		}
	}
	return newestFirst(runs, limit), nil
}

// RunKey generates a key for a RunRecord
func RunKey(runID string) string {
	return RunPrefix + runID
}

func newestFirst(runs []models.RunRecord, limit int) []models.RunRecord {
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].RunID > runs[j].RunID
		}
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs
}
