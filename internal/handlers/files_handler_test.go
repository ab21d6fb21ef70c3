package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uploadFile отправляет один файл через multipart-форму
func uploadFile(t *testing.T, h http.Handler, name, content string, parentID string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("files", name)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	if parentID != "" {
		require.NoError(t, mw.WriteField("parentId", parentID))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var r *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(b))
	} else {
		r = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestFiles_UploadThenList(t *testing.T) {
	h := newTestHandler(t)

	rr := uploadFile(t, h, "a.txt", strings.Repeat("x", 1024), "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var uploaded []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &uploaded))
	require.Len(t, uploaded, 1)
	assert.Equal(t, "a.txt", uploaded[0]["originalName"])

	rr = doJSON(t, h, http.MethodGet, "/api/files", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, float64(1024), listed[0]["size"])
	assert.Equal(t, false, listed[0]["isFolder"])
	assert.Nil(t, listed[0]["parentId"])
}

func TestFiles_NestedDeleteThroughAPI(t *testing.T) {
	h := newTestHandler(t)

	// F → G → x.txt
	rr := doJSON(t, h, http.MethodPost, "/api/files/folder", map[string]any{"name": "F"})
	require.Equal(t, http.StatusOK, rr.Code)
	var f map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	fID := int64(f["id"].(float64))

	rr = doJSON(t, h, http.MethodPost, "/api/files/folder", map[string]any{"name": "G", "parentId": fID})
	require.Equal(t, http.StatusOK, rr.Code)
	var g map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	gID := int64(g["id"].(float64))

	rr = uploadFile(t, h, "x.txt", "data", fmt.Sprintf("%d", gID))
	require.Equal(t, http.StatusOK, rr.Code)
	var uploaded []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &uploaded))
	xID := int64(uploaded[0]["id"].(float64))

	// удаляем корень поддерева
	rr = doJSON(t, h, http.MethodDelete, fmt.Sprintf("/api/files/%d", fID), nil)
	require.Equal(t, http.StatusOK, rr.Code)

	// корневой список пуст, потомки отдают 404
	rr = doJSON(t, h, http.MethodGet, "/api/files", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/files/%d", gID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/files/%d", xID), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFiles_DeleteMissingReturns404(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodDelete, "/api/files/42", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFiles_SearchRequiresQuery(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodGet, "/api/files/search", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/api/files/search?q=zzz", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listed []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	assert.Empty(t, listed)
}

func TestFiles_MoveIntoOwnSubtreeRejected(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodPost, "/api/files/folder", map[string]any{"name": "F"})
	require.Equal(t, http.StatusOK, rr.Code)
	var f map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	fID := int64(f["id"].(float64))

	rr = doJSON(t, h, http.MethodPost, "/api/files/folder", map[string]any{"name": "G", "parentId": fID})
	require.Equal(t, http.StatusOK, rr.Code)
	var g map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &g))
	gID := int64(g["id"].(float64))

	// в саму себя
	rr = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/files/%d", fID), map[string]any{"parentId": fID})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// в собственного потомка
	rr = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/files/%d", fID), map[string]any{"parentId": gID})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// перенос потомка в корень — легален
	rr = doJSON(t, h, http.MethodPut, fmt.Sprintf("/api/files/%d", gID), map[string]any{"moveToRoot": true})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestFiles_ThumbnailServesBlobWithCacheHeaders(t *testing.T) {
	h := newTestHandler(t)

	rr := uploadFile(t, h, "pic.jpg", "jpegdata", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var uploaded []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &uploaded))
	name := uploaded[0]["name"].(string)

	req := httptest.NewRequest(http.MethodGet, "/uploads/thumbnail/"+name, nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "public, max-age=31536000", rr.Header().Get("Cache-Control"))
	assert.Equal(t, "image/jpeg", rr.Header().Get("Content-Type"))
	assert.Equal(t, "jpegdata", rr.Body.String())

	// неизвестное имя — 404
	req = httptest.NewRequest(http.MethodGet, "/uploads/thumbnail/nope.jpg", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestFiles_CreateFolderValidation(t *testing.T) {
	h := newTestHandler(t)

	rr := doJSON(t, h, http.MethodPost, "/api/files/folder", map[string]any{"name": ""})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// родитель не существует
	rr = doJSON(t, h, http.MethodPost, "/api/files/folder", map[string]any{"name": "x", "parentId": 99})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
