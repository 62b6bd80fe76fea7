package fetch

import (
	"fmt"
	"os"

	"github.com/brogergvhs/yomikazu/internal/site"
	"golang.org/x/net/html/charset"
)

// FromFile reads a page saved from the browser. rawURL is where it was saved
// from; identifiers are derived from it, never from the file name.
func FromFile(path, rawURL string) (*site.Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	r, err := charset.NewReader(f, "text/html")
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return site.NewPage(rawURL, r)
}
