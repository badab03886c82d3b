// Package ocr detects text lines in images using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2) behind the
// overlay.Detector interface. Each recognized text line becomes one
// detection with an axis-aligned quad and a confidence in [0, 1].
//
// # Prerequisites
//
// Tesseract must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr
//   - macOS: brew install tesseract
//   - Windows: Download from https://github.com/UB-Mannheim/tesseract/wiki
//
// Language data files are required for each language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr-chi-sim (Simplified Chinese)
//   - Other languages: tesseract-ocr-<lang> packages
//
// # Languages
//
// The default language is Simplified Chinese ("chi_sim"). Several languages
// can be combined with "+", for example "chi_sim+eng". The tessdata
// directory is taken from TESSDATA_PREFIX unless set explicitly.
//
// # Recognized Text
//
// Tesseract separates CJK characters in a line with spaces. Those spaces are
// removed before the text is returned; spaces between Latin words are kept.
//
// # Error Handling
//
// Engine construction is cheap and never touches Tesseract. Missing
// language data or a broken installation is reported by the first Detect
// call.
package ocr
