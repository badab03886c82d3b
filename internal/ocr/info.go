package ocr

import (
	"os"

	"github.com/otiai10/gosseract/v2"
)

// Info describes the OCR backend.
type Info struct {
	Available    bool     `json:"available"`
	Version      string   `json:"version,omitempty"`
	Backend      string   `json:"backend"`
	Languages    []string `json:"languages,omitempty"`
	TessdataPath string   `json:"tessdata_path,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// GetInfo reports the linked Tesseract version and the languages installed
// in the default tessdata directory.
func GetInfo() Info {
	info := Info{
		Backend:      "gosseract",
		Version:      gosseract.Version(),
		TessdataPath: os.Getenv("TESSDATA_PREFIX"),
	}

	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		info.Error = err.Error()
		return info
	}
	info.Languages = langs
	info.Available = info.Version != ""
	return info
}

// HasLanguage reports whether every language in langs is installed.
func (i Info) HasLanguage(langs ...string) bool {
	for _, want := range langs {
		found := false
		for _, have := range i.Languages {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
