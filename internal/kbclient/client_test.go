package kbclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListDocuments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/kb/documents", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"a1","title":"Правила КАСКО","companyCode":"SOGAZ","productCode":"AUTO","isApproved":true,"isObsolete":false},
			{"id":"b2","title":"Условия ДМС","companyCode":"RESO","productCode":"HEALTH","isApproved":false,"isObsolete":true}
		]`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	docs, err := client.ListDocuments(context.Background())

	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a1", docs[0].ID)
	assert.Equal(t, "SOGAZ", docs[0].CompanyCode)
	assert.True(t, docs[0].IsApproved)
	assert.Equal(t, "HEALTH", docs[1].ProductCode)
	assert.True(t, docs[1].IsObsolete)
}

func TestClient_ListDocuments_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	_, err := client.ListDocuments(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_GetDocumentContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/kb/documents/a1", r.URL.Path)
		w.Write([]byte("Полис КАСКО покрывает ущерб автомобилю."))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	content, err := client.GetDocumentContent(context.Background(), "a1")

	require.NoError(t, err)
	assert.Equal(t, "Полис КАСКО покрывает ущерб автомобилю.", content)
}

func TestClient_GetDocumentContent_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	_, err := client.GetDocumentContent(context.Background(), "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestClient_Chat(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"Полис ОСАГО обязателен для всех водителей."}`))
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	answer, err := client.Chat(context.Background(), "Нужен ли ОСАГО?")

	require.NoError(t, err)
	assert.Contains(t, answer, "ОСАГО")
}

func TestClient_Health(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(srv.URL, 5*time.Second)
	assert.NoError(t, client.Health(context.Background()))
}
