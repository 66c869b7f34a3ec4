package extractor

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// extractWithOCR converts PDF pages to images and runs Tesseract OCR. This
// handles scanned statements that carry no text layer. The language defaults
// to Portuguese through Options.
// Requires: pdftoppm (poppler-utils) and tesseract (tesseract-ocr).
func extractWithOCR(filePath, lang string) ([]string, error) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		return nil, fmt.Errorf("pdftoppm not available (install poppler-utils): %w", err)
	}
	if _, err := exec.LookPath("tesseract"); err != nil {
		return nil, fmt.Errorf("tesseract not available (install tesseract-ocr): %w", err)
	}

	tmpDir, err := os.MkdirTemp("", "ocr-pages-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	// 300 DPI gives tesseract enough detail for statement tables.
	imgPrefix := filepath.Join(tmpDir, "page")
	cmd := exec.Command("pdftoppm", "-r", "300", "-png", filePath, imgPrefix)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm failed: %v (output: %s)", err, string(out))
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read temp dir: %w", err)
	}

	var imageFiles []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".png") {
			imageFiles = append(imageFiles, filepath.Join(tmpDir, e.Name()))
		}
	}
	sort.Strings(imageFiles)

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no page images")
	}

	var pages []string
	for _, imgFile := range imageFiles {
		outBase := strings.TrimSuffix(imgFile, ".png") + "-ocr"
		// PSM 4 = single column of variable-size text, the usual statement shape.
		cmd := exec.Command("tesseract", imgFile, outBase, "-l", lang, "--psm", "4")
		if out, err := cmd.CombinedOutput(); err != nil {
			// A single bad page should not sink the rest.
			fmt.Fprintf(os.Stderr, "tesseract warning for %s: %v (output: %s)\n", imgFile, err, string(out))
			pages = append(pages, "")
			continue
		}

		data, err := os.ReadFile(outBase + ".txt")
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, strings.TrimSpace(string(data)))
	}

	if totalTextLen(pages) == 0 {
		return nil, fmt.Errorf("tesseract OCR produced no text from %d page images", len(imageFiles))
	}

	return pages, nil
}

// IsOCRAvailable reports whether the external OCR toolchain is installed.
// This is informational only; OCR runs solely when enabled in Options.
func IsOCRAvailable() bool {
	_, err1 := exec.LookPath("pdftoppm")
	_, err2 := exec.LookPath("tesseract")
	return err1 == nil && err2 == nil
}
