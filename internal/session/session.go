// Package session owns the state of one editing session: the pristine
// source image and the edit log applied against it.
package session

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/pixeldesk/image-edit-mcp/internal/codec"
	"github.com/pixeldesk/image-edit-mcp/internal/editlog"
	"github.com/pixeldesk/image-edit-mcp/internal/pipeline"
)

// ErrNoImage is returned by operations that require a loaded source image.
var ErrNoImage = errors.New("no image loaded")

// Session holds the original source bytes for the duration of an editing
// session. The source is immutable once loaded: every render replays the
// edit log against these same bytes, never against a previous render's
// output. Loading a new image replaces the source and clears the log.
//
// A Session is not synchronized; the server serializes access to it.
type Session struct {
	name     string
	original []byte
	width    int
	height   int
	log      editlog.Log
}

// New creates an empty session with no image loaded.
func New() *Session {
	return &Session{}
}

// Load validates that data decodes as a supported raster format and makes
// it the session source. Any existing edit log is cleared. The name is
// kept for display and export filenames.
func (s *Session) Load(name string, data []byte) error {
	img, _, err := codec.DecodeFormat(data)
	if err != nil {
		return err
	}
	bounds := img.Bounds()

	src := make([]byte, len(data))
	copy(src, data)

	s.name = name
	s.original = src
	s.width = bounds.Dx()
	s.height = bounds.Dy()
	s.log.Clear()
	return nil
}

// Loaded reports whether a source image is present.
func (s *Session) Loaded() bool { return s.original != nil }

// Name returns the display name of the loaded image.
func (s *Session) Name() string { return s.name }

// SourceSize returns the pristine source dimensions.
func (s *Session) SourceSize() (width, height int) { return s.width, s.height }

// Log returns the session's edit log.
func (s *Session) Log() *editlog.Log { return &s.log }

// Inspect describes the pristine source image for an info panel.
func (s *Session) Inspect() (*codec.ImageInfo, error) {
	if !s.Loaded() {
		return nil, ErrNoImage
	}
	return codec.Inspect(s.original)
}

// Render replays the active edit log against the pristine source and
// encodes to target. Quality 0 selects the codec default.
func (s *Session) Render(target codec.Format, quality int) (*pipeline.Result, error) {
	if !s.Loaded() {
		return nil, ErrNoImage
	}
	return pipeline.Apply(s.original, s.log.Operations(), target, quality)
}

// ExportFilename returns the filename for an export in the given format:
// the loaded image's base name with the format's canonical extension.
// The format should be the one a render actually wrote, so a WEBP request
// that fell back to PNG is labeled .png.
func (s *Session) ExportFilename(written codec.Format) string {
	base := strings.TrimSuffix(filepath.Base(s.name), filepath.Ext(s.name))
	if base == "" || base == "." {
		base = "image"
	}
	return base + written.Extension()
}
