package extractor

import (
	"os/exec"
	"testing"
)

func TestIsOCRAvailable(t *testing.T) {
	result := IsOCRAvailable()
	t.Logf("IsOCRAvailable() = %v", result)

	_, err1 := exec.LookPath("pdftoppm")
	_, err2 := exec.LookPath("tesseract")
	expected := err1 == nil && err2 == nil
	if result != expected {
		t.Errorf("IsOCRAvailable() = %v, but direct check says %v", result, expected)
	}
}

func TestExtractWithOCR_MissingTools(t *testing.T) {
	if IsOCRAvailable() {
		t.Skip("OCR tools are installed; cannot test missing-tool error path")
	}

	_, err := extractWithOCR("/nonexistent/file.pdf", "por")
	if err == nil {
		t.Error("expected error when OCR tools are not installed")
	}
}

func TestExtractWithOCR_NonexistentFile(t *testing.T) {
	if !IsOCRAvailable() {
		t.Skip("OCR tools not installed; skipping")
	}

	_, err := extractWithOCR("/tmp/nonexistent-file-12345.pdf", "por")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}
