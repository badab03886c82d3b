package overlay

import (
	"fmt"
	"strings"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
)

// FontColorMode selects how the fill color of drawn text is chosen.
type FontColorMode int

const (
	White FontColorMode = iota
	Black
	// Auto uses the dominant text color of each region.
	Auto
)

func (m FontColorMode) String() string {
	switch m {
	case White:
		return "white"
	case Black:
		return "black"
	case Auto:
		return "auto"
	}
	return fmt.Sprintf("FontColorMode(%d)", int(m))
}

// Fixed returns the fill color for White and Black. ok is false for Auto.
func (m FontColorMode) Fixed() (c imaging.RGBColor, ok bool) {
	switch m {
	case White:
		return imaging.White, true
	case Black:
		return imaging.Black, true
	}
	return imaging.RGBColor{}, false
}

// ParseFontColorMode parses "white", "black" or "auto", ignoring case.
func ParseFontColorMode(s string) (FontColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return White, nil
	case "black":
		return Black, nil
	case "auto":
		return Auto, nil
	}
	return 0, fmt.Errorf("invalid font color %q: must be white, black or auto", s)
}
