package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

type DocumentKind string

const (
	KindPDF  DocumentKind = "pdf"
	KindDOCX DocumentKind = "docx"
)

// KindFromFilename maps an upload name to the parser that handles it. Legacy
// .doc files go to the DOCX parser.
func KindFromFilename(name string) (DocumentKind, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return KindPDF, nil
	case ".doc", ".docx":
		return KindDOCX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, filepath.Ext(name))
	}
}

type TextExtractor interface {
	ExtractText(path string, kind DocumentKind) (string, error)
}

type textExtractor struct{}

func NewTextExtractor() TextExtractor {
	return &textExtractor{}
}

func (e *textExtractor) ExtractText(path string, kind DocumentKind) (string, error) {
	switch kind {
	case KindPDF:
		return extractPDF(path)
	case KindDOCX:
		return extractDOCX(path)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMediaType, kind)
	}
}

// extractPDF concatenates page text in page order. Pages that are null or
// fail to decode contribute nothing.
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(text)
	}

	return textBuilder.String(), nil
}

func extractDOCX(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open DOCX: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat DOCX: %w", err)
	}

	doc, err := docx.Parse(f, info.Size())
	if err != nil {
		return "", fmt.Errorf("failed to parse DOCX: %w", err)
	}

	var parts []string
	for _, item := range doc.Document.Body.Items {
		switch it := item.(type) {
		case *docx.Paragraph:
			parts = append(parts, it.String())
		case *docx.Table:
			parts = append(parts, it.String())
		}
	}

	return strings.Join(parts, "\n"), nil
}
