package news

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"noobie-agent/internal/domain/model"
)

// Snapshot is the on-disk shape of a cached article batch.
type Snapshot struct {
	Timestamp time.Time       `json:"timestamp"`
	Count     int             `json:"count"`
	Articles  []model.Article `json:"articles"`
}

// DefaultCachePath resolves the per-day cache file location under the
// user's data directory.
func DefaultCachePath(now time.Time) (string, error) {
	name := filepath.Join("noobie-agent", fmt.Sprintf("news_cache_%s.json", now.Format("2006-01-02")))
	path, err := xdg.DataFile(name)
	if err != nil {
		return "", fmt.Errorf("resolve cache path: %w", err)
	}
	return path, nil
}

// SaveCache writes the article batch to path as a JSON snapshot.
func SaveCache(path string, articles []model.Article) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	snapshot := Snapshot{
		Timestamp: time.Now(),
		Count:     len(articles),
		Articles:  articles,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache %s: %w", path, err)
	}
	return nil
}

// LoadCache reads a previously saved snapshot. The article shape is
// unchanged on reload.
func LoadCache(path string) ([]model.Article, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cache %s: %w", path, err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", path, err)
	}
	return snapshot.Articles, nil
}
