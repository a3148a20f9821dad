package processors

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// previewLimit caps how much extracted text is echoed back to the channel
const previewLimit = 1000

const truncationMarker = "...(truncated)"

// RegisterDocumentProcessors adds the PDF and Word document text
// extractors to the registry
func RegisterDocumentProcessors(registry *Registry) {
	registry.Register(Entry{
		Extensions:  []string{"pdf"},
		Mimetypes:   []string{"application/pdf"},
		Transform:   processPdf,
		Description: "Extract text from PDF files",
	})

	registry.Register(Entry{
		Extensions: []string{"docx"},
		Mimetypes: []string{
			"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		},
		Transform:   processDocx,
		Description: "Extract text from Word documents",
	})
}

// processPdf extracts text from a PDF and replies with a preview
func processPdf(_ context.Context, input Input) (*Output, error) {
	reader, err := pdf.NewReader(bytes.NewReader(input.Content), int64(len(input.Content)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF %s: %w", input.Filename, err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from PDF %s: %w", input.Filename, err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return nil, fmt.Errorf("failed to read PDF text from %s: %w", input.Filename, err)
	}

	preview, truncated := truncateText(buf.String())

	return &Output{
		Text: fmt.Sprintf("*PDF Extracted: %s*\nPages: %d\n\n```\n%s%s\n```",
			input.Filename, reader.NumPage(), preview, truncated),
		ReplyInThread: true,
	}, nil
}

// processDocx extracts text from a .docx and replies with a preview
func processDocx(_ context.Context, input Input) (*Output, error) {
	text, err := extractDocxText(input.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from document %s: %w", input.Filename, err)
	}

	preview, truncated := truncateText(text)

	return &Output{
		Text: fmt.Sprintf("*Document Extracted: %s*\n\n```\n%s%s\n```",
			input.Filename, preview, truncated),
		ReplyInThread: true,
	}, nil
}

// truncateText cuts text down to the preview limit, reporting whether a
// truncation marker should be appended. The limit counts characters, not
// bytes, so multi-byte text is never cut mid-rune.
func truncateText(text string) (string, string) {
	runes := []rune(text)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]), truncationMarker
	}
	return text, ""
}

// extractDocxText pulls the raw text out of the main document part of a
// .docx archive. Paragraph boundaries become newlines.
func extractDocxText(content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("not a valid docx archive: %w", err)
	}

	var document *zip.File
	for _, f := range archive.File {
		if f.Name == "word/document.xml" {
			document = f
			break
		}
	}
	if document == nil {
		return "", fmt.Errorf("docx archive has no word/document.xml")
	}

	rc, err := document.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open document part: %w", err)
	}
	defer rc.Close()

	var sb strings.Builder
	decoder := xml.NewDecoder(rc)
	inText := false
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to parse document XML: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}
