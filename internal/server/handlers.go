package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/image-translate-mcp/internal/imaging"
	"github.com/ironsheep/image-translate-mcp/internal/overlay"
)

// decodeFailureMessage is shown to clients in place of decoder internals.
const decodeFailureMessage = "unsupported or malformed image, please upload a valid JPG or PNG"

// Box colors used by image_detect_text annotations.
var (
	acceptedBoxColor = mustParseHex("#00c853")
	rejectedBoxColor = mustParseHex("#ff1744")
)

// annotateThickness is the outline width of annotated detection boxes.
const annotateThickness = 2

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_translate").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// Undecodable images are reported with a fixed, user-facing message.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WithFields(logrus.Fields{"tool": params.Name}).WithError(err).Warn("tool failed")
		data := err.Error()
		if errors.Is(err, imaging.ErrDecode) {
			data = decodeFailureMessage
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", data)
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_translate":
		return s.handleImageTranslate(args)
	case "image_detect_text":
		return s.handleImageDetectText(args)
	case "image_text_color":
		return s.handleImageTextColor(args)
	case "image_fit_font_size":
		return s.handleImageFitFontSize(args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func mustParseHex(hex string) imaging.RGBColor {
	c, err := imaging.ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// === image_load ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// === image_translate ===

type imageTranslateArgs struct {
	Path       string `json:"path"`
	FontColor  string `json:"font_color"`
	OutputPath string `json:"output_path"`
	Format     string `json:"format"`
}

// TranslateResult reports one translated image.
type TranslateResult struct {
	Width         int                   `json:"width"`
	Height        int                   `json:"height"`
	FontColor     string                `json:"font_color"`
	Detected      int                   `json:"detected"`
	Accepted      int                   `json:"accepted"`
	Regions       []overlay.RenderSpec  `json:"regions"`
	PixelsChanged int                   `json:"pixels_changed"`
	Cached        bool                  `json:"cached"`
	OutputPath    string                `json:"output_path,omitempty"`
	Image         *imaging.EncodedImage `json:"image,omitempty"`
}

func (s *Server) handleImageTranslate(args json.RawMessage) (interface{}, error) {
	var a imageTranslateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	mode := s.mode
	if a.FontColor != "" {
		m, err := overlay.ParseFontColorMode(a.FontColor)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	li, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	res, cached, err := s.translate(li, mode)
	if err != nil {
		return nil, err
	}

	diff, err := imaging.CompareImages(li.Image, res.Image)
	if err != nil {
		return nil, err
	}

	bounds := res.Image.Bounds()
	out := &TranslateResult{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		FontColor:     mode.String(),
		Detected:      len(res.Detected),
		Accepted:      len(res.Accepted),
		Regions:       res.Regions,
		PixelsChanged: diff.PixelsChanged,
		Cached:        cached,
	}
	if out.Regions == nil {
		out.Regions = []overlay.RenderSpec{}
	}

	if a.OutputPath != "" {
		if err := imaging.Save(res.Image, a.OutputPath); err != nil {
			return nil, err
		}
		out.OutputPath = a.OutputPath
		return out, nil
	}

	formatName := a.Format
	if formatName == "" {
		formatName = li.Format
	}
	format, err := imaging.FormatFromName(formatName)
	if err != nil {
		return nil, err
	}
	out.Image, err = imaging.EncodeBase64(res.Image, format)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// translate runs the pipeline once per (content, mode) pair and returns
// the stored result afterwards. Callers must not modify the result.
func (s *Server) translate(li *imaging.LoadedImage, mode overlay.FontColorMode) (*overlay.Result, bool, error) {
	key := resultKey{fingerprint: li.Fingerprint, mode: mode}

	s.mu.Lock()
	res, ok := s.results[key]
	s.mu.Unlock()
	if ok {
		return res, true, nil
	}

	res, err := s.pipeline.Translate(li.Image, mode)
	if err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	s.results[key] = res
	s.mu.Unlock()
	return res, false, nil
}

// === image_detect_text ===

type imageDetectTextArgs struct {
	Path     string `json:"path"`
	Annotate bool   `json:"annotate"`
}

// DetectedRegion is one detector result with its filter verdict.
type DetectedRegion struct {
	Text       string            `json:"text"`
	Confidence float64           `json:"confidence"`
	Box        overlay.RegionBox `json:"box"`
	Geometry   string            `json:"geometry"`
	Accepted   bool              `json:"accepted"`
	Reason     string            `json:"reason,omitempty"`
}

// DetectTextResult lists every detection in detector order.
type DetectTextResult struct {
	Regions       []DetectedRegion      `json:"regions"`
	AcceptedCount int                   `json:"accepted_count"`
	Annotated     *imaging.EncodedImage `json:"annotated,omitempty"`
}

func (s *Server) handleImageDetectText(args json.RawMessage) (interface{}, error) {
	var a imageDetectTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	li, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	dets, err := s.pipeline.Detect(li.Image)
	if err != nil {
		return nil, err
	}

	out := &DetectTextResult{Regions: make([]DetectedRegion, 0, len(dets))}
	boxes := make([]imaging.Box, 0, len(dets))
	for _, d := range dets {
		reason := overlay.Reject(d)
		region := DetectedRegion{
			Text:       d.Text,
			Confidence: d.Confidence,
			Box:        overlay.BoxOf(d),
			Geometry:   d.Geometry().String(),
			Accepted:   reason == "",
			Reason:     reason,
		}
		out.Regions = append(out.Regions, region)

		c := rejectedBoxColor
		if region.Accepted {
			out.AcceptedCount++
			c = acceptedBoxColor
		}
		boxes = append(boxes, imaging.Box{Rect: region.Box.Rect(), Color: c})
	}

	if a.Annotate {
		annotated := imaging.AnnotateBoxes(li.Image, boxes, annotateThickness)
		out.Annotated, err = imaging.EncodeBase64(annotated, imaging.PNG)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// === image_text_color ===

type imageTextColorArgs struct {
	Path string `json:"path"`
	X1   int    `json:"x1"`
	Y1   int    `json:"y1"`
	X2   int    `json:"x2"`
	Y2   int    `json:"y2"`
}

// TextColorResult is the dominant text color of a region and the color
// chosen to contrast with it.
type TextColorResult struct {
	Text     imaging.ColorResult `json:"text"`
	Contrast imaging.ColorResult `json:"contrast"`
	// Distance is the RGB distance between the two, 0 to sqrt(3).
	Distance float64 `json:"distance"`
}

func (s *Server) handleImageTextColor(args json.RawMessage) (interface{}, error) {
	var a imageTextColorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	li, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}

	crop, err := imaging.Crop(li.Image, a.X1, a.Y1, a.X2, a.Y2)
	if err != nil {
		return nil, err
	}

	text := s.pipeline.Compositor().Analyzer.DominantColor(crop, imaging.PrepareForDetection(crop))
	contrast := overlay.HighContrast(text)

	return &TextColorResult{
		Text:     imaging.NewColorResult(text),
		Contrast: imaging.NewColorResult(contrast),
		Distance: text.Distance(contrast),
	}, nil
}

// === image_fit_font_size ===

type imageFitFontSizeArgs struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Text   string `json:"text"`
}

// maxFitSide bounds the box accepted by image_fit_font_size.
const maxFitSide = 8192

// FitFontSizeResult is the chosen size and the ink box it produces.
type FitFontSizeResult struct {
	FontSize   int  `json:"font_size"`
	TextWidth  int  `json:"text_width"`
	TextHeight int  `json:"text_height"`
	Fits       bool `json:"fits"`
}

func (s *Server) handleImageFitFontSize(args json.RawMessage) (interface{}, error) {
	var a imageFitFontSizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Width <= 0 || a.Height <= 0 {
		return nil, fmt.Errorf("width and height must be positive, got %dx%d", a.Width, a.Height)
	}
	if a.Width > maxFitSide || a.Height > maxFitSide {
		return nil, fmt.Errorf("width and height must be at most %d, got %dx%d", maxFitSide, a.Width, a.Height)
	}

	r := s.pipeline.Compositor().Rasterizer
	size := overlay.FitFontSize(a.Width, a.Height, a.Text, r)
	w, h := r.Measure(a.Text, size)

	return &FitFontSizeResult{
		FontSize:   size,
		TextWidth:  w,
		TextHeight: h,
		Fits:       w <= a.Width && h <= a.Height,
	}, nil
}
