package storage

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	fw, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestValidateUpload(t *testing.T) {
	header := fileHeader(t, "photo.jpg", []byte("fake image bytes"))
	assert.NoError(t, ValidateUpload(header, ImageExts, 2))

	header = fileHeader(t, "photo.JPG", []byte("fake image bytes"))
	assert.NoError(t, ValidateUpload(header, ImageExts, 2), "extension check is case-insensitive")

	header = fileHeader(t, "script.exe", []byte("bad"))
	assert.Error(t, ValidateUpload(header, ImageExts, 2))

	header = fileHeader(t, "resume.pdf", []byte("pdf"))
	assert.NoError(t, ValidateUpload(header, DocumentExts, 5))
	assert.Error(t, ValidateUpload(header, ImageExts, 2))

	big := fileHeader(t, "big.jpg", bytes.Repeat([]byte("x"), 3*1024*1024))
	assert.Error(t, ValidateUpload(big, ImageExts, 2))

	assert.Error(t, ValidateUpload(nil, ImageExts, 2))
}

func TestLocalStoreSave(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	header := fileHeader(t, "photo.jpg", []byte("fake image bytes"))
	path, err := store.Save(context.Background(), header, "workers")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/uploads/workers/"))
	assert.True(t, strings.HasSuffix(path, "_photo.jpg"))

	onDisk := filepath.Join(dir, strings.TrimPrefix(path, "/uploads/"))
	content, err := os.ReadFile(onDisk)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), content)
}

func TestLocalStoreSaveWithoutFolder(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	header := fileHeader(t, "photo.png", []byte("x"))
	path, err := store.Save(context.Background(), header, "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, "/uploads/"))
	assert.NotContains(t, strings.TrimPrefix(path, "/uploads/"), "/")
}

func TestLocalStoreUniqueNames(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), fileHeader(t, "photo.jpg", []byte("a")), "")
	require.NoError(t, err)
	second, err := store.Save(context.Background(), fileHeader(t, "photo.jpg", []byte("b")), "")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
