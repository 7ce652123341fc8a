// Package dictload populates dictionary trees from their TOML
// representation: a root table with optional name/prefix, repeated
// [[record]] tables with [[record.value]] entries, nested [[dictionary]]
// tables and optional [[translation]] metadata.
package dictload

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"

	"github.com/pelletier/go-toml/v2"

	"langkit/internal/domain/entities"
)

// Load reads a dictionary tree from r. Either the whole tree loads or an
// error is returned; the caller never observes a partially built store.
func Load(r io.Reader) (*entities.Dictionary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("dictload: read: %w", err)
	}
	var doc dictionaryDoc
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dictload: parse: %w", err)
	}
	return toDictionary(doc)
}

// LoadFile reads a dictionary tree from the file at path.
func LoadFile(path string) (*entities.Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictload: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// LoadFS reads a dictionary tree from a file in fsys, typically an embed.FS
// bundled with the application.
func LoadFS(fsys fs.FS, name string) (*entities.Dictionary, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("dictload: open %s: %w", name, err)
	}
	defer f.Close()
	return Load(f)
}

// LoadURL fetches a dictionary tree over HTTP.
func LoadURL(ctx context.Context, url string) (*entities.Dictionary, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dictload: request %s: %w", url, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("dictload: fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dictload: fetch %s: unexpected status %s", url, resp.Status)
	}
	return Load(resp.Body)
}
