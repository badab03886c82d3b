package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
	"github.com/ironsheep/image-translate-mcp/internal/overlay"
)

// translateFile translates the image at in and writes it to out. The
// output format follows out's extension.
func translateFile(p *overlay.Pipeline, in, out string, mode overlay.FontColorMode, log logrus.FieldLogger) error {
	if _, err := imaging.FormatFromPath(out); err != nil {
		return err
	}

	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	start := time.Now()
	res, err := p.TranslateReader(f, mode)
	if err != nil {
		return fmt.Errorf("%s: %w", in, err)
	}
	if err := imaging.Save(res.Image, out); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"input":    in,
		"output":   out,
		"regions":  len(res.Regions),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Info("translated")
	return nil
}

// batchSummary reports a translateDir run.
type batchSummary struct {
	Converted int
	Failed    []string
}

// translateDir translates every file in inDir matching pattern into outDir
// under the same name. A failing file is logged and skipped.
func translateDir(p *overlay.Pipeline, inDir, outDir, pattern string, mode overlay.FontColorMode, log logrus.FieldLogger) (*batchSummary, error) {
	matches, err := filepath.Glob(filepath.Join(inDir, pattern))
	if err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := &batchSummary{}
	for _, in := range matches {
		if fi, err := os.Stat(in); err != nil || fi.IsDir() {
			continue
		}
		out := filepath.Join(outDir, filepath.Base(in))
		if err := translateFile(p, in, out, mode, log); err != nil {
			log.WithError(err).WithField("input", in).Warn("skipping file")
			summary.Failed = append(summary.Failed, in)
			continue
		}
		summary.Converted++
	}
	return summary, nil
}
