package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentCSV = "student_id,reg_no,first_name,last_name,email,department\n" +
	"S001,2024CS001,Asha,Rao,asha@example.edu,CS\n" +
	",2024CS002,Vikram,Shah,vikram@example.edu,CS\n"

func TestAdminImportStudentsRawBody(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/import/students", bytes.NewBufferString(studentCSV))
	req.Header.Set("Content-Type", "text/csv")
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	report, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), report["imported"])
	assert.Equal(t, float64(1), report["skipped"])
	assert.Equal(t, 1, srv.students.Count())
}

func TestAdminImportStudentsMultipart(t *testing.T) {
	srv := newTestServer(t)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "students.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(studentCSV))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/import/students", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, srv.students.Count())
}

func TestAdminImportEmptyBody(t *testing.T) {
	srv := newTestServer(t)

	w := srv.do(t, http.MethodPost, "/api/v1/admin/import/students", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAdminExportAndList(t *testing.T) {
	srv := newTestServer(t)
	srv.seedStudent(t, "S001")
	srv.seedCourse(t, 101)

	w := srv.do(t, http.MethodPost, "/api/v1/admin/export", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	result, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), result["students"])

	w = srv.do(t, http.MethodGet, "/api/v1/admin/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope = decodeEnvelope(t, w)
	files, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, files, 3)
}

func TestAdminBackupLifecycle(t *testing.T) {
	srv := newTestServer(t)
	srv.seedStudent(t, "S001")

	w := srv.do(t, http.MethodPost, "/api/v1/admin/export", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(t, http.MethodPost, "/api/v1/admin/backups", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(t, http.MethodGet, "/api/v1/admin/backups", nil)
	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	files, ok := envelope.Data.([]interface{})
	require.True(t, ok)
	assert.Len(t, files, 1)
	require.NotNil(t, envelope.Meta)
	assert.Greater(t, envelope.Meta["total_size"], float64(0))

	w = srv.do(t, http.MethodPost, "/api/v1/admin/backups/cleanup", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAdminTranscriptPDF(t *testing.T) {
	srv := newTestServer(t)
	srv.seedStudent(t, "S001")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/export/transcript/S001", nil)
	w := httptest.NewRecorder()
	srv.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}
