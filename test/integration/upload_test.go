package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dienstmarkt_backend/test/helpers"
)

// filesRoutePath turns a stored upload URL into a path on the test server.
func filesRoutePath(t *testing.T, uploadURL string) string {
	t.Helper()
	idx := strings.Index(uploadURL, "/api/v1/files/")
	require.NotEqual(t, -1, idx, "upload URL %q does not point at the files route", uploadURL)
	return uploadURL[idx:]
}

func TestProfileImage_UploadAndServeRoundTrip(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, user := helpers.CreateAndLoginUser(t, ts, "fotograf@example.at", "sicheres-passwort", false)
	helpers.CreateProfile(t, ts.DB, user.ID, "Lena", "Bauer",
		[]string{"Fotografie"}, []string{"Graz"})

	content := []byte("profilbild-bytes")
	res, bodyStr := ts.SendMultipart(t, "/api/v1/profiles/my/image", token, []helpers.MultipartFile{
		{FieldName: "image", FileName: "avatar.png", ContentType: "image/png", Content: content},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

	var upload struct {
		URL      string `json:"url"`
		MimeType string `json:"mime_type"`
	}
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &upload))
	assert.Equal(t, "image/png", upload.MimeType)

	// The stored file comes back byte for byte through the files route.
	fileRes, err := http.Get(ts.Server.URL + filesRoutePath(t, upload.URL))
	require.NoError(t, err)
	defer fileRes.Body.Close()
	require.Equal(t, http.StatusOK, fileRes.StatusCode)
	assert.Equal(t, "image/png", fileRes.Header.Get("Content-Type"))
	served, err := io.ReadAll(fileRes.Body)
	require.NoError(t, err)
	assert.Equal(t, content, served)

	// The profile now carries the image URL.
	res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/profiles/my", token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, upload.URL)
}

func TestProfileImage_MissingFileRejected(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, user := helpers.CreateAndLoginUser(t, ts, "leer@example.at", "sicheres-passwort", false)
	helpers.CreateProfile(t, ts.DB, user.ID, "Max", "Huber",
		[]string{"Elektriker"}, []string{"Wien"})

	res, _ := ts.SendMultipart(t, "/api/v1/profiles/my/image", token, nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestJobImages_UploadLimits(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	token, user := helpers.CreateAndLoginUser(t, ts, "inserent@example.at", "sicheres-passwort", false)
	job := helpers.CreateJob(t, ts.DB, user.ID, "Gartenzaun streichen", "Linz", "Maler")
	imagesPath := fmt.Sprintf("/api/v1/jobs/%s/images", job.ID)

	t.Run("too many files", func(t *testing.T) {
		files := make([]helpers.MultipartFile, 0, 6)
		for i := 0; i < 6; i++ {
			files = append(files, helpers.MultipartFile{
				FieldName:   "images",
				FileName:    fmt.Sprintf("bild%d.jpg", i),
				ContentType: "image/jpeg",
				Content:     []byte("jpg"),
			})
		}
		res, _ := ts.SendMultipart(t, imagesPath, token, files)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})

	t.Run("file over size limit", func(t *testing.T) {
		res, _ := ts.SendMultipart(t, imagesPath, token, []helpers.MultipartFile{{
			FieldName:   "images",
			FileName:    "riesig.jpg",
			ContentType: "image/jpeg",
			Content:     bytes.Repeat([]byte("x"), 6<<20),
		}})
		assert.Equal(t, http.StatusRequestEntityTooLarge, res.StatusCode)
	})

	t.Run("disallowed content type", func(t *testing.T) {
		res, _ := ts.SendMultipart(t, imagesPath, token, []helpers.MultipartFile{{
			FieldName:   "images",
			FileName:    "virus.exe",
			ContentType: "application/octet-stream",
			Content:     []byte("MZ"),
		}})
		assert.Equal(t, http.StatusUnsupportedMediaType, res.StatusCode)
	})

	t.Run("valid batch is stored on the listing", func(t *testing.T) {
		res, bodyStr := ts.SendMultipart(t, imagesPath, token, []helpers.MultipartFile{
			{FieldName: "images", FileName: "vorher.jpg", ContentType: "image/jpeg", Content: []byte("vorher")},
			{FieldName: "images", FileName: "nachher.jpg", ContentType: "image/jpeg", Content: []byte("nachher")},
		})
		require.Equal(t, http.StatusOK, res.StatusCode, bodyStr)

		var resp struct {
			Job struct {
				Images []string `json:"images"`
			} `json:"job"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		assert.Len(t, resp.Job.Images, 2)
	})
}

func TestJobImages_StrangerRejected(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	_, owner := helpers.CreateAndLoginUser(t, ts, "inserent@example.at", "sicheres-passwort", false)
	job := helpers.CreateJob(t, ts.DB, owner.ID, "Umzugshilfe", "Wien", "Transport")
	strangerToken, _ := helpers.CreateAndLoginUser(t, ts, "fremd@example.at", "sicheres-passwort", false)

	res, _ := ts.SendMultipart(t, fmt.Sprintf("/api/v1/jobs/%s/images", job.ID), strangerToken,
		[]helpers.MultipartFile{{
			FieldName:   "images",
			FileName:    "bild.jpg",
			ContentType: "image/jpeg",
			Content:     []byte("jpg"),
		}})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestFilesRoute_TraversalRejected(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	for _, path := range []string{
		"/api/v1/files/../config/config.yaml",
		"/api/v1/files/..%2fconfig%2fconfig.yaml",
		"/api/v1/files/uploads/../../go.mod",
	} {
		req, err := http.NewRequest(http.MethodGet, ts.Server.URL+path, nil)
		require.NoError(t, err)
		res, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode, "path %q", path)
	}
}
