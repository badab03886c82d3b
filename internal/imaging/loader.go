package imaging

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
)

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// decodes.
//
// The cache stores the raw file bytes and the decoded image.Image keyed by file
// path. Every Load re-reads the file and compares its fingerprint with the
// cached entry, so a file edited in place is decoded again while an unchanged
// file skips decoding.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
// For long-running processes handling many images, consider periodic cleanup to
// prevent unbounded memory growth.
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*LoadedImage
}

// LoadedImage is a decoded image together with the bytes it was decoded from.
type LoadedImage struct {
	Image image.Image

	// Format is the decoded format name: "png", "jpeg", "gif", "bmp" or "tiff".
	Format string

	// Data is the undecoded file content.
	Data []byte

	// Fingerprint is the hex SHA-256 of Data.
	Fingerprint string
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*LoadedImage),
	}
}

// Load reads the file at path and returns its decoded image. The cached entry
// is returned when the file content is unchanged since it was decoded.
//
// The image is cached using the exact path string provided. Different paths to the
// same file (e.g., relative vs absolute) will result in separate cache entries.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns an error wrapping ErrDecode if the content is not a supported image
func (c *ImageCache) Load(path string) (*LoadedImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	fp := Fingerprint(data)

	c.mu.RLock()
	if li, ok := c.images[path]; ok && li.Fingerprint == fp {
		c.mu.RUnlock()
		return li, nil
	}
	c.mu.RUnlock()

	img, format, err := Decode(bytes.NewReader(data))
	if err != nil {
		c.Evict(path)
		return nil, err
	}

	li := &LoadedImage{
		Image:       img,
		Format:      format,
		Data:        data,
		Fingerprint: fp,
	}

	c.mu.Lock()
	c.images[path] = li
	c.mu.Unlock()

	return li, nil
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*LoadedImage)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ErrDecode is returned when input bytes are not a supported, well-formed image.
var ErrDecode = errors.New("unsupported or malformed image")

// Decode decodes an image, applying EXIF orientation so the returned pixels
// are upright the way a viewer would show them. The format name reported by
// the registered decoder is returned alongside.
func Decode(r io.Reader) (image.Image, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image: %w", err)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return img, format, nil
}

// Output encodings.
const (
	JPEG = imaging.JPEG
	PNG  = imaging.PNG
)

// FormatFromPath picks the output encoding from a file extension.
// "jpg" is accepted as "jpeg".
func FormatFromPath(path string) (imaging.Format, error) {
	return FormatFromName(strings.TrimPrefix(filepath.Ext(path), "."))
}

// FormatFromName resolves a format name such as "png", "jpg" or "jpeg".
func FormatFromName(name string) (imaging.Format, error) {
	f, err := imaging.FormatFromExtension(strings.ToLower(name))
	if err != nil {
		return 0, fmt.Errorf("unsupported output format %q: %w", name, err)
	}
	return f, nil
}

// MimeType returns the MIME type for an encoding format.
func MimeType(f imaging.Format) string {
	return "image/" + strings.ToLower(f.String())
}

// Encode writes img to w in the given format. JPEG output uses quality 95.
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	if err := imaging.Encode(w, img, format, imaging.JPEGQuality(95)); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// Save encodes img to path, choosing the format from the path's extension.
func Save(img image.Image, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Fingerprint returns the hex SHA-256 of data.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoded format: "png", "jpeg", "gif", "bmp" or "tiff".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	li, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := li.Image.Bounds()

	hasAlpha := false
	colorDepth := "8-bit"
	switch li.Image.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        li.Format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: int64(len(li.Data)),
	}, nil
}
