package overlay

import (
	"errors"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
)

var (
	// ErrDecode reports input that is not a supported, well-formed image.
	ErrDecode = imaging.ErrDecode

	// ErrDetection reports a failure of the text detector.
	ErrDetection = errors.New("text detection failed")

	// ErrConversion reports a failure of the script converter.
	ErrConversion = errors.New("script conversion failed")
)
