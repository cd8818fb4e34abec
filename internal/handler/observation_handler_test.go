package handler

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/parecer-api/internal/dto"
	"github.com/noah-isme/parecer-api/internal/middleware"
	"github.com/noah-isme/parecer-api/internal/models"
	"github.com/noah-isme/parecer-api/internal/service"
)

type fakeRecordsExporter struct{ filter models.ObservationFilter }

func (f *fakeRecordsExporter) RecordsCSV(_ context.Context, _ string, filter models.ObservationFilter) (*service.ExportFile, error) {
	f.filter = filter
	return &service.ExportFile{Filename: "registros.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("data;tipo\n")}, nil
}

type fakeUploader struct {
	filename string
	size     int
}

func (f *fakeUploader) Upload(_ context.Context, _ string, filename string, data []byte) (*dto.MediaUploadResponse, error) {
	f.filename, f.size = filename, len(data)
	return &dto.MediaUploadResponse{URL: "https://cdn/x.jpg", Kind: "foto", ContentType: "image/jpeg", Size: len(data)}, nil
}

func TestExportCSVParsesFilter(t *testing.T) {
	exporter := &fakeRecordsExporter{}
	h := NewObservationHandler(nil, exporter, nil, 0)
	c, rec := authedContext(http.MethodGet, "/api/registros/exportar?aluno_id=stu-1&de=2024-03-01&ate=2024-03-31&evidencia=true&tipo=foto", nil)

	h.ExportCSV(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="registros.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "stu-1", exporter.filter.StudentID)
	assert.Equal(t, models.ObservationPhoto, exporter.filter.Kind)
	require.NotNil(t, exporter.filter.Evidence)
	assert.True(t, *exporter.filter.Evidence)
	assert.Equal(t, "2024-03-31", exporter.filter.To.Format("2006-01-02"))
}

func TestExportCSVRejectsBadDates(t *testing.T) {
	h := NewObservationHandler(nil, &fakeRecordsExporter{}, nil, 0)

	for _, query := range []string{"de=01/03/2024", "de=2024-03-10&ate=2024-03-01"} {
		c, rec := authedContext(http.MethodGet, "/api/registros/exportar?"+query, nil)
		h.ExportCSV(c)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestUploadMediaReadsMultipartFile(t *testing.T) {
	uploader := &fakeUploader{}
	h := NewObservationHandler(nil, nil, uploader, 1024)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "foto.jpg")
	require.NoError(t, err)
	_, _ = part.Write([]byte("jpeg-bytes"))
	require.NoError(t, writer.Close())

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/registros/midia", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	claims := &models.JWTClaims{}
	claims.Subject = "prof-1"
	c.Set(middleware.ContextUserKey, claims)

	h.UploadMedia(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "foto.jpg", uploader.filename)
	assert.Equal(t, len("jpeg-bytes"), uploader.size)
}
