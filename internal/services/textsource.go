package services

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"

	"contentgen/internal/textutil"
)

var (
	ErrTooLarge = errors.New("text exceeds the size limit")
	ErrNoText   = errors.New("no extractable text")
)

// Document is text loaded for summarization.
type Document struct {
	Text   string
	Words  int
	Source string
}

// TextSource loads the text a user wants summarized from local input. The
// byte limit applies to the extracted text, so a small compressed docx
// cannot expand past it.
type TextSource struct {
	maxBytes int64
}

func NewTextSource() *TextSource {
	return &TextSource{maxBytes: 20 * 1024 * 1024}
}

// FromPath extracts text from a .txt, .md, .pdf or .docx file.
func (s *TextSource) FromPath(path string) (*Document, error) {
	var (
		raw string
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".txt", ".md", "":
		raw, err = s.plainText(path)
	case ".pdf":
		raw, err = s.pdfText(path)
	case ".docx":
		raw, err = s.docxText(path)
	default:
		return nil, fmt.Errorf("unsupported file type for text extraction: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return s.document(filepath.Base(path), raw)
}

// FromReader reads pasted text, e.g. from stdin.
func (s *TextSource) FromReader(name string, r io.Reader) (*Document, error) {
	raw, err := s.readAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return s.document(name, raw)
}

func (s *TextSource) document(source, raw string) (*Document, error) {
	text := textutil.Paragraphs(raw)
	if text == "" {
		return nil, fmt.Errorf("%s: %w", source, ErrNoText)
	}
	doc := &Document{Text: text, Words: textutil.WordCount(text), Source: source}
	log.Debug().Str("source", source).Int("words", doc.Words).Msg("text loaded")
	return doc, nil
}

func (s *TextSource) readAll(r io.Reader) (string, error) {
	b, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(b)) > s.maxBytes {
		return "", ErrTooLarge
	}
	return string(b), nil
}

func (s *TextSource) plainText(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return s.readAll(f)
}

// boundedText accumulates extracted text and fails once it passes max bytes.
type boundedText struct {
	strings.Builder
	max int64
}

func (b *boundedText) add(s string) error {
	if int64(b.Len()+len(s)) > b.max {
		return ErrTooLarge
	}
	b.WriteString(s)
	return nil
}

func (s *TextSource) pdfText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	out := &boundedText{max: s.maxBytes}
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			log.Debug().Err(err).Int("page", i).Msg("skipping unreadable pdf page")
			continue
		}
		if err := out.add(content + "\n\n"); err != nil {
			return "", err
		}
	}
	return out.String(), nil
}

func (s *TextSource) docxText(path string) (string, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return "", err
	}
	defer r.Close()

	rc, err := r.Open("word/document.xml")
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("not a Word document: word/document.xml missing")
	}
	if err != nil {
		return "", err
	}
	defer rc.Close()

	out := &boundedText{max: s.maxBytes}
	if err := wordprocessingText(rc, out); err != nil {
		return "", err
	}
	return out.String(), nil
}

// wordprocessingText streams a WordprocessingML body, keeping run text
// (w:t) and turning paragraph ends, breaks and tabs into whitespace.
func wordprocessingText(r io.Reader, out *boundedText) error {
	dec := xml.NewDecoder(r)
	inText := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("parse document.xml: %w", err)
		}

		var chunk string
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				chunk = "\t"
			case "br", "cr":
				chunk = "\n"
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				chunk = "\n"
			}
		case xml.CharData:
			if inText {
				chunk = string(t)
			}
		}

		if chunk != "" {
			if err := out.add(chunk); err != nil {
				return err
			}
		}
	}
}
