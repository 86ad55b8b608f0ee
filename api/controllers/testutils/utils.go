package testutils

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alex-pricope/hackathon-judging/api/transport"
	"github.com/alex-pricope/hackathon-judging/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// PerformRequest Helper for performing requests in tests.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// NewSQLiteStores opens a private in-memory database with the schema applied.
func NewSQLiteStores(t *testing.T) *storage.Stores {
	t.Helper()
	db, err := storage.OpenSQL(context.Background(), storage.DriverSQLite, "file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreateSchema(context.Background()))
	return storage.NewSQLStores(db)
}

// Login posts the code and returns headers carrying the session cookie.
func Login(t *testing.T, router *gin.Engine, code string) map[string]string {
	t.Helper()
	res := PerformRequest(router, http.MethodPost, "/api/auth/login", map[string]string{"loginCode": code}, nil)
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	for _, c := range res.Result().Cookies() {
		if c.Name == transport.CookieName {
			return map[string]string{"Cookie": c.Name + "=" + c.Value}
		}
	}
	t.Fatalf("login response carried no %s cookie", transport.CookieName)
	return nil
}

// DecodeJSON unmarshals the recorded body into T.
func DecodeJSON[T any](t *testing.T, res *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &v), res.Body.String())
	return v
}
