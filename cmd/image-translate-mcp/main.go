package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-translate-mcp/internal/config"
	"github.com/ironsheep/image-translate-mcp/internal/convert"
	"github.com/ironsheep/image-translate-mcp/internal/logging"
	"github.com/ironsheep/image-translate-mcp/internal/ocr"
	"github.com/ironsheep/image-translate-mcp/internal/overlay"
	"github.com/ironsheep/image-translate-mcp/internal/server"
	"github.com/ironsheep/image-translate-mcp/internal/typeset"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version", "-v", "version":
			printVersion(os.Stdout, config.Load())
			return 0
		case "--help", "-h", "help":
			printUsage(os.Stdout)
			return 0
		}
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration:\n%v\n", err)
		return 2
	}

	// Log to stderr (stdout is for MCP protocol)
	log := logging.New(cfg.LogLevel, os.Stderr)

	if len(args) > 0 {
		switch args[0] {
		case "translate":
			return runTranslate(cfg, log, args[1:])
		case "batch":
			return runBatch(cfg, log, args[1:])
		default:
			fmt.Fprintf(os.Stderr, "unknown command %q\n\n", args[0])
			printUsage(os.Stderr)
			return 2
		}
	}

	a, err := newApp(cfg, log)
	if err != nil {
		log.WithError(err).Error("startup failed")
		return 1
	}
	defer a.Close()

	log.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"commit":     GitCommit,
		"font":       cfg.FontPath,
		"ocr_lang":   cfg.OCRLanguage,
		"conversion": cfg.Conversion,
		"font_color": cfg.FontColor,
	}).Info("image-translate-mcp server starting")

	server.Version = Version
	srv := server.New(a.pipeline, cfg.ColorMode(), log)
	if err := srv.Run(); err != nil {
		log.WithError(err).Error("server error")
		return 1
	}
	return 0
}

func runTranslate(cfg *config.Config, log *logrus.Logger, args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	color := fs.String("color", cfg.FontColor, "Font color: white, black or auto")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: image-translate-mcp translate [-color white|black|auto] <input> <output>")
		return 2
	}
	mode, err := overlay.ParseFontColorMode(*color)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	a, err := newApp(cfg, log)
	if err != nil {
		log.WithError(err).Error("startup failed")
		return 1
	}
	defer a.Close()

	if err := translateFile(a.pipeline, fs.Arg(0), fs.Arg(1), mode, log); err != nil {
		log.WithError(err).Error("translation failed")
		return 1
	}
	return 0
}

func runBatch(cfg *config.Config, log *logrus.Logger, args []string) int {
	fs := flag.NewFlagSet("batch", flag.ContinueOnError)
	color := fs.String("color", cfg.FontColor, "Font color: white, black or auto")
	pattern := fs.String("pattern", "*.jpg", "Glob selecting input files")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: image-translate-mcp batch [-color white|black|auto] [-pattern *.jpg] <input-dir> <output-dir>")
		return 2
	}
	mode, err := overlay.ParseFontColorMode(*color)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	a, err := newApp(cfg, log)
	if err != nil {
		log.WithError(err).Error("startup failed")
		return 1
	}
	defer a.Close()

	summary, err := translateDir(a.pipeline, fs.Arg(0), fs.Arg(1), *pattern, mode, log)
	if err != nil {
		log.WithError(err).Error("batch failed")
		return 1
	}
	log.WithFields(logrus.Fields{
		"converted": summary.Converted,
		"failed":    len(summary.Failed),
	}).Info("batch finished")
	if len(summary.Failed) > 0 {
		return 1
	}
	return 0
}

// app owns the long-lived collaborators shared by every image.
type app struct {
	pipeline *overlay.Pipeline
	closers  []io.Closer
}

func newApp(cfg *config.Config, log *logrus.Logger) (*app, error) {
	a := &app{}

	font, err := typeset.LoadFont(cfg.FontPath)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, font)

	conv, err := convert.NewOpenCC(cfg.Conversion)
	if err != nil {
		a.Close()
		return nil, err
	}

	engine, err := ocr.NewEngine(cfg.OCRLanguage, cfg.TessdataPrefix)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, engine)

	comp := overlay.NewCompositor(conv, font, log)
	a.pipeline = overlay.NewPipeline(engine, comp, overlay.Options{SortRegions: cfg.SortRegions})
	return a, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i].Close()
	}
}

func printVersion(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "image-translate-mcp %s\n", Version)
	fmt.Fprintf(w, "  Build time: %s\n", BuildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)

	info := ocr.GetInfo()
	if info.Version != "" {
		fmt.Fprintf(w, "  Tesseract:  %s\n", info.Version)
	}
	if info.Error != "" {
		fmt.Fprintf(w, "  OCR error:  %s\n", info.Error)
	}
	if len(info.Languages) > 0 {
		fmt.Fprintf(w, "  Languages:  %s\n", strings.Join(info.Languages, ", "))
	}
	langs := strings.Split(cfg.OCRLanguage, "+")
	status := "installed"
	if !info.HasLanguage(langs...) {
		status = "MISSING"
	}
	fmt.Fprintf(w, "  OCR model:  %s (%s)\n", cfg.OCRLanguage, status)
	fmt.Fprintf(w, "  Font:       %s\n", cfg.FontPath)
	fmt.Fprintf(w, "  Conversion: %s\n", cfg.Conversion)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "image-translate-mcp - redraw Simplified Chinese text in images as Traditional Chinese")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  image-translate-mcp                       Run the MCP server on stdin/stdout")
	fmt.Fprintln(w, "  image-translate-mcp translate [-color C] <input> <output>")
	fmt.Fprintln(w, "  image-translate-mcp batch [-color C] [-pattern GLOB] <input-dir> <output-dir>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --version, -v    Print version information")
	fmt.Fprintln(w, "  --help, -h       Print this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment variables:")
	fmt.Fprintln(w, "  IMAGE_TRANSLATE_LOG_LEVEL     Log level (default info)")
	fmt.Fprintln(w, "  IMAGE_TRANSLATE_FONT          Bold CJK font file (default assets/NotoSansTC-Bold.ttf)")
	fmt.Fprintln(w, "  IMAGE_TRANSLATE_OCR_LANG      Tesseract language (default chi_sim)")
	fmt.Fprintln(w, "  TESSDATA_PREFIX               Tesseract data directory")
	fmt.Fprintln(w, "  IMAGE_TRANSLATE_CONVERSION    OpenCC profile (default s2twp)")
	fmt.Fprintln(w, "  IMAGE_TRANSLATE_FONT_COLOR    white, black or auto (default white)")
	fmt.Fprintln(w, "  IMAGE_TRANSLATE_SORT_REGIONS  Draw regions top to bottom (default false)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The output format follows the output file extension (.png, .jpg, .jpeg).")
}
