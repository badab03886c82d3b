package overlay

import (
	"fmt"
	"image"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
)

// Detector finds text regions in an image.
type Detector interface {
	Detect(img image.Image) ([]Detection, error)
}

// Options tune a Pipeline.
type Options struct {
	// SortRegions draws regions top to bottom, left to right instead of in
	// detector order.
	SortRegions bool
}

// Result is the outcome of translating one image.
type Result struct {
	// Image is the translated canvas.
	Image *image.RGBA

	// Detected is everything the detector reported.
	Detected []Detection

	// Accepted is the subset that passed Filter, in drawing order.
	Accepted []Detection

	// Regions describes each region drawn.
	Regions []RenderSpec
}

// Pipeline runs detection and compositing for whole images.
type Pipeline struct {
	detector   Detector
	compositor *Compositor
	opts       Options
	log        logrus.FieldLogger
}

// NewPipeline wires a detector to a compositor. The pipeline logs through
// the compositor's logger.
func NewPipeline(d Detector, c *Compositor, opts Options) *Pipeline {
	return &Pipeline{
		detector:   d,
		compositor: c,
		opts:       opts,
		log:        c.Log,
	}
}

// Translate returns a copy of img with every qualifying text region
// replaced by its converted rendering. img itself is not modified.
func (p *Pipeline) Translate(img image.Image, mode FontColorMode) (*Result, error) {
	canvas := imaging.CloneRGBA(img)
	prepared := imaging.PrepareForDetection(img)

	detected, err := p.detector.Detect(prepared)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetection, err)
	}

	accepted := Filter(detected)
	if p.opts.SortRegions {
		accepted = SortByPosition(accepted)
	}

	p.log.WithFields(logrus.Fields{
		"detected": len(detected),
		"accepted": len(accepted),
		"mode":     mode.String(),
	}).Info("translating image")

	regions, err := p.compositor.Render(canvas, prepared, accepted, mode)
	if err != nil {
		return nil, err
	}

	return &Result{
		Image:    canvas,
		Detected: detected,
		Accepted: accepted,
		Regions:  regions,
	}, nil
}

// TranslateReader decodes an image from r and translates it.
func (p *Pipeline) TranslateReader(r io.Reader, mode FontColorMode) (*Result, error) {
	img, _, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	return p.Translate(img, mode)
}

// Detect runs only the detection half of the pipeline: the image is
// contrast-scaled and passed to the detector. Nothing is filtered.
func (p *Pipeline) Detect(img image.Image) ([]Detection, error) {
	dets, err := p.detector.Detect(imaging.PrepareForDetection(img))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDetection, err)
	}
	return dets, nil
}

// Compositor returns the pipeline's compositor.
func (p *Pipeline) Compositor() *Compositor {
	return p.compositor
}
