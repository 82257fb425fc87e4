package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/roster-ocr/internal/config"
	"github.com/ironsheep/roster-ocr/internal/ocr"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"check-deps"},
	Short:   "Check that Tesseract and the configured language pack are installed",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		info := ocr.Probe(cfg.OCR.TessdataPrefix)
		fmt.Printf("Tesseract version: %s\n", info.Version)
		if info.TessdataPrefix != "" {
			fmt.Printf("Tessdata prefix:   %s\n", info.TessdataPrefix)
		}
		if !info.Available {
			return fmt.Errorf("tesseract is not usable: %s", info.Error)
		}

		fmt.Printf("Languages:         %s\n", strings.Join(info.Languages, ", "))
		if !info.HasLanguage(cfg.OCR.Language) {
			return fmt.Errorf("language pack %q is not installed", cfg.OCR.Language)
		}
		fmt.Printf("\nReady to extract with language %q.\n", cfg.OCR.Language)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
