// Package extract turns uploaded attachments into prompt context: text files
// pass through, PDF and PPTX get their text pulled out, images become a
// vision payload. Unsupported types yield an empty attachment, never a user
// facing error.
package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Attachment is the extracted form of an upload. Either Text or
// ImageData+ImageMIME is set, never both.
type Attachment struct {
	Text      string
	ImageData []byte
	ImageMIME string
}

var imageMIMEs = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

var imageExts = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "webp": true, "gif": true,
}

// Context extracts prompt context from one upload. A failed extraction
// returns the error alongside an empty attachment so the caller can log it
// and continue without the context.
func Context(filename, mimeType string, data []byte) (Attachment, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	mime := strings.ToLower(mimeType)

	switch {
	case ext == "pptx":
		text, err := PptxPromptContext(data)
		if err != nil {
			return Attachment{}, fmt.Errorf("failed to extract pptx text: %w", err)
		}
		return Attachment{Text: text}, nil
	case ext == "txt" || ext == "md":
		return Attachment{Text: string(data)}, nil
	case ext == "pdf":
		text, err := pdfText(data)
		if err != nil {
			return Attachment{}, fmt.Errorf("failed to extract pdf text: %w", err)
		}
		return Attachment{Text: text}, nil
	case imageExts[ext] || imageMIMEs[mime]:
		if !imageMIMEs[mime] {
			mime = "image/jpeg"
		}
		return Attachment{ImageData: data, ImageMIME: mime}, nil
	}
	return Attachment{}, nil
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	text := strings.TrimSpace(buf.String())
	if text == "" {
		text = "(PDF with no extractable text)"
	}
	return text, nil
}

var slidePathRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

// PptxSlideTexts returns the text of each slide of a .pptx, in slide order.
// A PPTX is a zip; slide text lives in ppt/slides/slideN.xml as <a:t> runs.
func PptxSlideTexts(data []byte) ([]string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	type slideFile struct {
		num  int
		file *zip.File
	}
	var slides []slideFile
	for _, f := range zr.File {
		m := slidePathRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		slides = append(slides, slideFile{num: num, file: f})
	}
	sort.Slice(slides, func(i, j int) bool { return slides[i].num < slides[j].num })

	texts := make([]string, 0, len(slides))
	for _, s := range slides {
		rc, err := s.file.Open()
		if err != nil {
			return nil, err
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		texts = append(texts, slideXMLText(raw))
	}
	return texts, nil
}

// PptxPromptContext renders the slide texts as "Slide N: ..." lines for the
// generation prompt.
func PptxPromptContext(data []byte) (string, error) {
	slides, err := PptxSlideTexts(data)
	if err != nil {
		return "", err
	}
	if len(slides) == 0 {
		return "", nil
	}
	lines := make([]string, len(slides))
	for i, text := range slides {
		lines[i] = fmt.Sprintf("Slide %d: %s", i+1, text)
	}
	return strings.Join(lines, "\n"), nil
}

const drawingMLNamespace = "http://schemas.openxmlformats.org/drawingml/2006/main"

func slideXMLText(raw []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	var texts []string
	var inTextRun bool
	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			inTextRun = t.Name.Local == "t" && t.Name.Space == drawingMLNamespace
		case xml.EndElement:
			inTextRun = false
		case xml.CharData:
			if inTextRun {
				if s := strings.TrimSpace(string(t)); s != "" {
					texts = append(texts, s)
				}
			}
		}
	}
	joined := strings.TrimSpace(strings.Join(texts, " "))
	if joined == "" {
		return "(no text)"
	}
	return joined
}
