// Package overlay replaces detected source-script text in an image with its
// converted rendering.
//
// A Pipeline runs one image end to end: it prepares a contrast-scaled copy
// for detection, asks a Detector for text regions, keeps the regions that
// pass Filter, and hands them to a Compositor. The Compositor draws each
// region onto a copy of the original, strictly in order:
//
//	box      := BoxOf(detection)
//	fill     := fixed color, or the region's dominant text color in Auto mode
//	text     := Converter.Convert(detection.Text)
//	size     := FitFontSize(box.Width, box.Height, text, rasterizer)
//	stroke   := HighContrast(fill)
//	rasterizer.Draw(canvas, RenderSpec{...})
//
// OCR, script conversion and glyph rasterization are collaborators behind
// the Detector, Converter and Rasterizer interfaces. Concrete
// implementations live in the ocr, convert and typeset packages.
//
// # Errors
//
// Decoding, detection and conversion failures abort the whole image and
// wrap ErrDecode, ErrDetection and ErrConversion respectively. An image
// without qualifying detections is returned unchanged.
package overlay
