// Package thumbnail generates and memoizes fixed-size PNG previews for
// the editor's image grid.
package thumbnail

import (
	"image"
	"sync"

	"github.com/pixeldesk/image-edit-mcp/internal/codec"
	"github.com/pixeldesk/image-edit-mcp/internal/transform"
)

// Thumbnail dimensions for the editor grid.
const (
	Width  = 140
	Height = 120
)

// Entry is one cached thumbnail. Entries are immutable once stored.
type Entry struct {
	// Key is the stable cache key the entry was created under.
	Key string `json:"key"`

	// Filename is the display name of the source image.
	Filename string `json:"filename"`

	// PNG is the encoded thumbnail. Thumbnails are always PNG regardless
	// of the source format, trading some size for lossless alpha-capable
	// previews.
	PNG []byte `json:"-"`
}

// Cache memoizes thumbnails keyed by a caller-supplied stable key.
//
// A key's thumbnail is generated at most once: subsequent requests return
// the stored entry without decoding the source again. Entries are only
// removed by Clear; there is no eviction policy, so the cache grows with
// the number of distinct images in a session.
//
// Cache is safe for concurrent use by multiple goroutines.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Entry

	// decode is swapped out in tests to observe memoization.
	decode func([]byte) (image.Image, error)
}

// New creates an empty thumbnail cache.
func New() *Cache {
	return &Cache{
		entries: make(map[string]*Entry),
		decode:  codec.Decode,
	}
}

// GetOrCreate returns the thumbnail for key, generating it on first
// request. Generation center-crops the decoded source to the thumbnail
// dimensions (window clamped when the source is smaller), resizes to
// exactly WidthxHeight, and encodes as PNG.
func (c *Cache) GetOrCreate(key, filename string, original []byte) (*Entry, error) {
	c.mu.RLock()
	if e, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	img, err := c.decode(original)
	if err != nil {
		return nil, err
	}

	thumb := transform.CropCenter(img, Width, Height)
	// The crop window clamps to the source bounds, so a small source
	// comes out under-sized; the resize pins the exact dimensions.
	thumb = transform.Resize(thumb, Width, Height)

	data, _, err := codec.Encode(thumb, codec.FormatPNG, 0)
	if err != nil {
		return nil, err
	}

	entry := &Entry{Key: key, Filename: filename, PNG: data}

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		// Lost a race with a concurrent generation; keep the first entry
		// so repeated lookups stay identical.
		return e, nil
	}
	c.entries[key] = entry
	return entry, nil
}

// Len returns the number of cached thumbnails.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all cached thumbnails.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]*Entry)
	c.mu.Unlock()
}
