package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/ironsheep/image-translate-mcp/internal/overlay"
)

// DefaultLanguage is Simplified Chinese.
const DefaultLanguage = "chi_sim"

// Engine is a long-lived Tesseract client. It is safe for concurrent use;
// calls are serialized.
type Engine struct {
	mu             sync.Mutex
	client         *gosseract.Client
	languages      []string
	tessdataPrefix string
}

// NewEngine creates an engine for a "+"-separated language list. An empty
// tessdataPrefix keeps Tesseract's default lookup.
func NewEngine(language, tessdataPrefix string) (*Engine, error) {
	if language == "" {
		language = DefaultLanguage
	}
	langs := strings.Split(language, "+")

	client := gosseract.NewClient()
	if err := client.SetLanguage(langs...); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			client.Close()
			return nil, fmt.Errorf("failed to set tessdata prefix: %w", err)
		}
	}

	return &Engine{
		client:         client,
		languages:      langs,
		tessdataPrefix: tessdataPrefix,
	}, nil
}

// Detect runs text-line recognition on img. Lines whose text is empty after
// normalization are dropped. Coordinates are relative to img's bounds.
func (e *Engine) Detect(img image.Image) ([]overlay.Detection, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image for OCR: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := e.client.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	return toDetections(boxes, img.Bounds().Min), nil
}

func toDetections(boxes []gosseract.BoundingBox, origin image.Point) []overlay.Detection {
	dets := make([]overlay.Detection, 0, len(boxes))
	for _, box := range boxes {
		text := NormalizeText(box.Word)
		if text == "" {
			continue
		}
		r := box.Box.Add(origin)
		dets = append(dets, overlay.Detection{
			Quad:       overlay.Rect(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)),
			Text:       text,
			Confidence: clamp01(box.Confidence / 100.0),
		})
	}
	return dets
}

// Languages returns the configured language list.
func (e *Engine) Languages() []string {
	return append([]string(nil), e.languages...)
}

// Close frees the Tesseract client.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.client.Close()
}

// clamp01 limits v to [0, 1]. NaN maps to 0.
func clamp01(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
