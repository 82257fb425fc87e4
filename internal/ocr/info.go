package ocr

import (
	"fmt"
	"sort"

	"github.com/otiai10/gosseract/v2"
)

// Info describes the local Tesseract installation.
type Info struct {
	Available      bool     `json:"available"`
	Version        string   `json:"version,omitempty"`
	Languages      []string `json:"languages,omitempty"`
	TessdataPrefix string   `json:"tessdata_prefix,omitempty"`
	Error          string   `json:"error,omitempty"`
}

// Probe reports whether Tesseract is usable, its version, and the installed
// language packs. It never fails; problems land in the Error field.
func Probe(tessdataPrefix string) Info {
	client := gosseract.NewClient()
	defer client.Close()

	info := Info{
		Version:        client.Version(),
		TessdataPrefix: tessdataPrefix,
	}

	if tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(tessdataPrefix); err != nil {
			info.Error = fmt.Sprintf("failed to set tessdata prefix: %v", err)
			return info
		}
	}

	langs, err := gosseract.GetAvailableLanguages()
	if err != nil {
		info.Error = fmt.Sprintf("failed to list languages: %v", err)
		return info
	}
	sort.Strings(langs)

	info.Available = true
	info.Languages = langs
	return info
}

// HasLanguage reports whether the given language pack is installed.
func (i Info) HasLanguage(language string) bool {
	for _, l := range i.Languages {
		if l == language {
			return true
		}
	}
	return false
}
