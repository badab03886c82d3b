// Package imaging provides the image plumbing shared by the translation
// pipeline and the MCP server: decoding with EXIF orientation, encoding,
// cropping, contrast preparation, color representations, debug box overlays
// and pixel diffs.
//
// Decoding and encoding go through github.com/disintegration/imaging, pixel
// transforms through github.com/anthonynsimon/bild and color conversions
// through github.com/lucasb-eyer/go-colorful.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Individual image operations
// are stateless and can be called concurrently on different images. Operations
// on the same image should be synchronized by the caller if the image is mutable.
//
// # Error Handling
//
// Content that cannot be decoded is reported with an error wrapping
// ErrDecode, so callers can tell a bad upload apart from an I/O failure:
//
//	if errors.Is(err, imaging.ErrDecode) { ... }
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging
