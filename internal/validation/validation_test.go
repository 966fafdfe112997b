package validation

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ada@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.io"))
	assert.Error(t, ValidateEmail("Ada <ada@example.com>"))
	assert.Equal(t, "ada@example.com", NormalizeEmail("  Ada@Example.COM "))
}

func TestValidateTitle(t *testing.T) {
	assert.NoError(t, ValidateTitle("Morning run"))
	assert.Error(t, ValidateTitle("   "))
	assert.Error(t, ValidateTitle(strings.Repeat("x", 101)))
	assert.NoError(t, ValidateTitle(strings.Repeat("é", 100)))

	assert.NoError(t, ValidateDescription(""))
	assert.Error(t, ValidateDescription(strings.Repeat("x", 1001)))
}

func TestValidateBytes(t *testing.T) {
	mimeType, err := ValidateBytes("proof.PNG", pngHeader, ImageConstraints)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)

	_, err = ValidateBytes("proof.jpg", []byte("plain text"), ImageConstraints)
	assert.ErrorContains(t, err, "invalid file type")

	_, err = ValidateBytes("proof.gif", pngHeader, ImageConstraints)
	assert.ErrorContains(t, err, "invalid file extension")

	big := append(bytes.Clone(pngHeader), make([]byte, ImageConstraints.MaxSize)...)
	_, err = ValidateBytes("proof.png", big, ImageConstraints)
	assert.ErrorContains(t, err, "file too large")

	_, err = ValidateBytes("proof.png", pngHeader)
	assert.Error(t, err)
}

func TestValidateFile(t *testing.T) {
	header := multipartHeader(t, "proof.png", pngHeader)
	assert.NoError(t, ValidateFile(header, ImageConstraints))

	header = multipartHeader(t, "proof.png", []byte("%PDF-1.4"))
	assert.Error(t, ValidateFile(header, ImageConstraints))
}

func multipartHeader(t *testing.T, filename string, data []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("photo", filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))

	return req.MultipartForm.File["photo"][0]
}
