package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
)

// pdfExtractor walks a PDF page by page, concatenates the page text and
// extracts embedded images, appending a markdown image reference after the
// text of the owning page so reading order survives to page granularity.
// The assembled markdown is also written as a reusable intermediate file.
type pdfExtractor struct {
	fs          afs.Service
	markdownURL string
	imageURL    string
}

// NewPDFExtractor returns the PDF strategy. Empty markdownURL or imageURL
// disables writing the respective auxiliary output.
func NewPDFExtractor(markdownURL, imageURL string) Extractor {
	return &pdfExtractor{fs: afs.New(), markdownURL: markdownURL, imageURL: imageURL}
}

func (p *pdfExtractor) Extract(ctx context.Context, name string, data []byte) (*Extraction, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	total := reader.NumPage()
	var content bytes.Buffer
	var images []string
	for pageNum := 1; pageNum <= total; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text := pageText(page)
		if strings.TrimSpace(text) != "" {
			content.WriteString(text)
			content.WriteByte('\n')
		}
		if p.imageURL == "" {
			continue
		}
		pageImages, err := p.extractImages(ctx, page, base, pageNum)
		if err != nil {
			return nil, err
		}
		for _, imageURL := range pageImages {
			content.WriteString(fmt.Sprintf("![%s](%s)\n", filepath.Base(imageURL), imageURL))
		}
		images = append(images, pageImages...)
	}
	if p.markdownURL != "" {
		markdownURL := url.Join(p.markdownURL, base+".md")
		if err := p.fs.Upload(ctx, markdownURL, file.DefaultFileOsMode, bytes.NewReader(content.Bytes())); err != nil {
			return nil, fmt.Errorf("write markdown intermediate: %w", err)
		}
	}
	return &Extraction{Text: content.Bytes(), Pages: total, Images: images}, nil
}

// extractImages writes the page's image XObjects to the image directory.
// Filenames are derived from (base, page, index, ext) so they stay stable
// across runs and cannot collide across documents.
func (p *pdfExtractor) extractImages(ctx context.Context, page pdf.Page, base string, pageNum int) ([]string, error) {
	resources := page.Resources()
	if resources.Kind() != pdf.Dict {
		return nil, nil
	}
	xobjects := resources.Key("XObject")
	if xobjects.Kind() != pdf.Dict && xobjects.Kind() != pdf.Stream {
		return nil, nil
	}
	var written []string
	index := 0
	for _, key := range xobjects.Keys() {
		object := xobjects.Key(key)
		if object.Key("Subtype").Name() != "Image" {
			continue
		}
		index++
		data, err := imageData(object)
		if err != nil {
			// Image streams the reader cannot decode are skipped; the page
			// text is unaffected.
			continue
		}
		imageName := fmt.Sprintf("%s_page_%d_%d.%s", base, pageNum, index, imageExt(object))
		imageURL := url.Join(p.imageURL, imageName)
		if err := p.fs.Upload(ctx, imageURL, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("write image %s: %w", imageName, err)
		}
		written = append(written, imageURL)
	}
	return written, nil
}

// pageText extracts the page text, absorbing parser panics on malformed
// content streams so one bad page does not abort the document.
func pageText(page pdf.Page) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
		}
	}()
	text, err := page.GetPlainText(nil)
	if err != nil {
		return ""
	}
	return text
}

func imageData(object pdf.Value) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("decode image stream: %v", r)
		}
	}()
	reader := object.Reader()
	defer reader.Close()
	return io.ReadAll(reader)
}

func imageExt(object pdf.Value) string {
	filter := object.Key("Filter")
	name := filter.Name()
	if filter.Kind() == pdf.Array && filter.Len() > 0 {
		name = filter.Index(filter.Len() - 1).Name()
	}
	switch name {
	case "DCTDecode":
		return "jpg"
	case "JPXDecode":
		return "jp2"
	default:
		return "bin"
	}
}
