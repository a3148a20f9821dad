package processors

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDocx assembles a minimal .docx archive holding the given paragraphs
func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		sb.WriteString(fmt.Sprintf(`<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, p))
	}
	sb.WriteString(`</w:body></w:document>`)

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	part, err := writer.Create("word/document.xml")
	require.NoError(t, err)
	_, err = part.Write([]byte(sb.String()))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return buf.Bytes()
}

func TestProcessDocx_ExtractsText(t *testing.T) {
	content := buildDocx(t, []string{"Hello from paragraph one.", "And paragraph two."})

	output, err := processDocx(context.Background(), Input{
		Filename:  "notes.docx",
		Mimetype:  "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		Extension: "docx",
		Content:   content,
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.True(t, output.ReplyInThread)
	assert.Contains(t, output.Text, "*Document Extracted: notes.docx*")
	assert.Contains(t, output.Text, "Hello from paragraph one.")
	assert.Contains(t, output.Text, "And paragraph two.")
	assert.NotContains(t, output.Text, truncationMarker)
	assert.Nil(t, output.File)
}

func TestProcessDocx_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("a", 2000)
	content := buildDocx(t, []string{long})

	output, err := processDocx(context.Background(), Input{
		Filename:  "long.docx",
		Extension: "docx",
		Content:   content,
	})

	require.NoError(t, err)
	require.NotNil(t, output)

	// Exactly the first 1000 characters, then the marker
	expected := strings.Repeat("a", previewLimit) + truncationMarker
	assert.Contains(t, output.Text, expected)
	assert.NotContains(t, output.Text, strings.Repeat("a", previewLimit+1))
}

func TestProcessDocx_InvalidArchive(t *testing.T) {
	output, err := processDocx(context.Background(), Input{
		Filename:  "broken.docx",
		Extension: "docx",
		Content:   []byte("definitely not a zip archive"),
	})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.docx")
}

// buildPDF assembles a minimal single-page PDF showing the given text.
// The text must not contain parentheses or backslashes. Object offsets
// are recorded while writing so the xref table is exact.
func buildPDF(t *testing.T, text string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj("2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n")
	writeObj("3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] " +
		"/Resources << /Font << /F1 5 0 R >> >> /Contents 4 0 R >>\nendobj\n")
	stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
	writeObj(fmt.Sprintf("4 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream))
	writeObj("5 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	xrefOffset := buf.Len()
	buf.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)+1))
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		buf.WriteString(fmt.Sprintf("%010d 00000 n \n", off))
	}
	buf.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n",
		len(offsets)+1, xrefOffset))

	return buf.Bytes()
}

func TestProcessPdf_ExtractsText(t *testing.T) {
	content := buildPDF(t, "Hello from a real PDF page.")

	output, err := processPdf(context.Background(), Input{
		Filename:  "report.pdf",
		Mimetype:  "application/pdf",
		Extension: "pdf",
		Content:   content,
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.True(t, output.ReplyInThread)
	assert.Contains(t, output.Text, "*PDF Extracted: report.pdf*")
	assert.Contains(t, output.Text, "Pages: 1")
	assert.Contains(t, output.Text, "Hello from a real PDF page.")
	assert.NotContains(t, output.Text, truncationMarker)
	assert.Nil(t, output.File)
}

func TestProcessPdf_TruncatesLongText(t *testing.T) {
	long := strings.Repeat("abcdefghij", 200) // 2000 characters
	content := buildPDF(t, long)

	output, err := processPdf(context.Background(), Input{
		Filename:  "long.pdf",
		Extension: "pdf",
		Content:   content,
	})

	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Contains(t, output.Text, long[:previewLimit]+truncationMarker)
	assert.NotContains(t, output.Text, long[:previewLimit+1])
}

func TestProcessPdf_InvalidContent(t *testing.T) {
	output, err := processPdf(context.Background(), Input{
		Filename:  "broken.pdf",
		Extension: "pdf",
		Content:   []byte("not a pdf"),
	})

	assert.Nil(t, output)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.pdf")
}

func TestTruncateText(t *testing.T) {
	t.Run("ShortTextUntouched", func(t *testing.T) {
		preview, marker := truncateText("short text")
		assert.Equal(t, "short text", preview)
		assert.Empty(t, marker)
	})

	t.Run("ExactlyAtLimit", func(t *testing.T) {
		text := strings.Repeat("x", previewLimit)
		preview, marker := truncateText(text)
		assert.Equal(t, text, preview)
		assert.Empty(t, marker)
	})

	t.Run("OverLimit", func(t *testing.T) {
		text := strings.Repeat("x", previewLimit+1)
		preview, marker := truncateText(text)
		assert.Len(t, preview, previewLimit)
		assert.Equal(t, truncationMarker, marker)
	})

	t.Run("MultiByteUnderLimitUntouched", func(t *testing.T) {
		// 400 characters but 1200 bytes; well under the character limit
		text := strings.Repeat("한", 400)
		preview, marker := truncateText(text)
		assert.Equal(t, text, preview)
		assert.Empty(t, marker)
	})

	t.Run("MultiByteOverLimitCutsOnRuneBoundary", func(t *testing.T) {
		text := strings.Repeat("한", previewLimit+500)
		preview, marker := truncateText(text)

		assert.Equal(t, previewLimit, utf8.RuneCountInString(preview))
		assert.True(t, utf8.ValidString(preview), "truncation must never split a rune")
		assert.Equal(t, strings.Repeat("한", previewLimit), preview)
		assert.Equal(t, truncationMarker, marker)
	})
}

func TestProcessDocx_TruncatesMultiByteTextByCharacters(t *testing.T) {
	content := buildDocx(t, []string{strings.Repeat("가", 2000)})

	output, err := processDocx(context.Background(), Input{
		Filename:  "korean.docx",
		Extension: "docx",
		Content:   content,
	})

	require.NoError(t, err)
	require.NotNil(t, output)

	assert.True(t, utf8.ValidString(output.Text))
	assert.Contains(t, output.Text, strings.Repeat("가", previewLimit)+truncationMarker)
	assert.NotContains(t, output.Text, strings.Repeat("가", previewLimit+1))
}
