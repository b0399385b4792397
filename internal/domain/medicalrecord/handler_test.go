package medicalrecord

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medappointment/internal/domain/auth"
	"medappointment/internal/middleware"
	"medappointment/internal/pkg/formdata"
	"medappointment/internal/pkg/jwt"
)

func uploadBody(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("description", "lab results"))

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestRoutes_DocumentLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)
	env := newTestEnv(t)
	jwtService := jwt.New("test-secret", time.Hour)
	parser, err := formdata.NewParser(formdata.Config{Dir: env.docDir, MaxFileSize: 1 << 10})
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1", middleware.JWTAuth(jwtService)), NewHandler(env.svc), parser)

	do := func(u *auth.User, req *http.Request) *httptest.ResponseRecorder {
		tok, err := jwtService.GenerateToken(u.ID, u.Email, string(u.Role))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}
	sendJSON := func(u *auth.User, method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			_ = json.NewEncoder(&buf).Encode(body)
		}
		return do(u, httptest.NewRequest(method, path, &buf))
	}
	upload := func(u *auth.User, recordID, filename, contentType string, data []byte) *httptest.ResponseRecorder {
		body, ct := uploadBody(t, filename, contentType, data)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/medical-records/"+recordID+"/documents", body)
		req.Header.Set("Content-Type", ct)
		return do(u, req)
	}
	storedFiles := func() int {
		entries, err := os.ReadDir(env.docDir)
		require.NoError(t, err)
		return len(entries)
	}

	w := sendJSON(env.patient, http.MethodPost, "/api/v1/medical-records", map[string]any{"patient_id": env.patient.ID, "title": "Mine"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = sendJSON(env.doctor, http.MethodPost, "/api/v1/medical-records", map[string]any{"patient_id": env.patient.ID, "title": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = sendJSON(env.doctor, http.MethodPost, "/api/v1/medical-records", map[string]any{
		"patient_id": env.patient.ID, "title": "Blood work", "diagnosis": "Anemia",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Data Record `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	recordID := created.Data.ID

	pdf := []byte("%PDF-1.4 hemoglobin 9.1")
	w = upload(env.doctor, recordID, "CBC results.pdf", "application/pdf", pdf)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var uploaded struct {
		Data struct {
			Document Document `json:"document"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploaded))
	doc := uploaded.Data.Document
	assert.Equal(t, "CBC_results.pdf", doc.FileName)
	assert.Equal(t, int64(len(pdf)), doc.FileSize)
	assert.Equal(t, "/uploads/"+doc.FilePath, doc.FileURL)
	assert.Equal(t, 1, storedFiles())

	w = upload(env.other, recordID, "intruder.pdf", "application/pdf", pdf)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 1, storedFiles(), "rejected upload leaves no file behind")

	w = upload(env.doctor, recordID, "notes.txt", "text/plain", []byte("hello"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "UNSUPPORTED_FILE_TYPE")

	w = upload(env.doctor, recordID, "huge.pdf", "application/pdf", bytes.Repeat([]byte("a"), 2<<10))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, 1, storedFiles())

	w = do(env.patient, httptest.NewRequest(http.MethodGet, "/api/v1/medical-records/"+recordID+"/documents", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":1`)

	w = do(env.patient, httptest.NewRequest(http.MethodGet, doc.DownloadURL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, pdf, w.Body.Bytes())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "CBC_results.pdf")

	w = do(env.patient, httptest.NewRequest(http.MethodGet, "/api/v1/medical-records/patient/"+env.patient.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), doc.ID)

	w = do(env.doctor, httptest.NewRequest(http.MethodDelete, "/api/v1/medical-records/"+recordID, nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(env.admin, httptest.NewRequest(http.MethodDelete, "/api/v1/medical-records/"+recordID, nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NoFileExists(t, filepath.Join(env.root, filepath.FromSlash(doc.FilePath)))

	w = do(env.patient, httptest.NewRequest(http.MethodGet, doc.DownloadURL, nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
