package extractor

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPDFExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	markdownDir := filepath.Join(dir, "md")
	imageDir := filepath.Join(dir, "images")
	e := NewPDFExtractor(markdownDir, imageDir)
	data := buildPDF(t, "Quarterly revenue increased 12 percent")
	extraction, err := e.Extract(context.Background(), "report.pdf", data)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if extraction.Pages != 1 {
		t.Fatalf("pages = %d, want 1", extraction.Pages)
	}
	if !strings.Contains(string(extraction.Text), "Quarterly revenue increased 12 percent") {
		t.Fatalf("page text lost: %q", extraction.Text)
	}
	if len(extraction.Images) != 0 {
		t.Fatalf("unexpected images %v", extraction.Images)
	}
	intermediate, err := os.ReadFile(filepath.Join(markdownDir, "report.md"))
	if err != nil {
		t.Fatalf("markdown intermediate not written: %v", err)
	}
	if !bytes.Equal(intermediate, extraction.Text) {
		t.Fatalf("intermediate content diverges from extraction:\n%q\nvs\n%q", intermediate, extraction.Text)
	}
}

func TestPDFExtractor_Extract_NoAuxOutputs(t *testing.T) {
	e := NewPDFExtractor("", "")
	data := buildPDF(t, "text only")
	extraction, err := e.Extract(context.Background(), "plain.pdf", data)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(string(extraction.Text), "text only") {
		t.Fatalf("page text lost: %q", extraction.Text)
	}
}

func TestPDFExtractor_Extract_Invalid(t *testing.T) {
	e := NewPDFExtractor("", "")
	if _, err := e.Extract(context.Background(), "broken.pdf", []byte("not a pdf")); err == nil {
		t.Fatal("expected error for invalid pdf")
	}
}

// buildPDF assembles a one-page PDF with a single text run, tracking object
// offsets so the xref table is valid.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, 6)
	writeObject := func(num int, body string) {
		offsets[num] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", num, body)
	}
	writeObject(1, "<< /Type /Catalog /Pages 2 0 R >>")
	writeObject(2, "<< /Type /Pages /Kids [3 0 R] /Count 1 >>")
	writeObject(3, "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>")
	content := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObject(4, fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(content), content))
	writeObject(5, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>")
	xref := buf.Len()
	buf.WriteString("xref\n0 6\n0000000000 65535 f \n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&buf, "%010d 00000 n \n", offsets[i])
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size 6 /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", xref)
	return buf.Bytes()
}
