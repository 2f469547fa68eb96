package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqual(t *testing.T) {
	assert.True(t, bodiesEqual([]byte(`{"a":1,"b":[1,2]}`), []byte(`{"b":[1,2],"a":1}`)))
	assert.True(t, bodiesEqual([]byte("id_number\n2024-0001\n"), []byte("id_number\n2024-0001")))
	assert.False(t, bodiesEqual([]byte(`{"a":1}`), []byte(`{"a":2}`)))
	assert.False(t, bodiesEqual([]byte("x"), []byte("y")))
}

func TestCompareSendsTokenAndDetectsDiff(t *testing.T) {
	var auth string
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"success","data":[]}`)) //nolint:errcheck
	}))
	defer primary.Close()
	candidate := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer candidate.Close()

	r := requester{client: primary.Client(), token: "abc"}
	res := r.compare(primary.URL, candidate.URL, target{Method: "GET", Path: "colleges", Critical: true})

	require.NoError(t, res.Error)
	assert.Equal(t, "Bearer abc", auth)
	assert.False(t, res.StatusMatch)
	assert.True(t, res.diverged())

	var buf bytes.Buffer
	printReport(&buf, []comparison{res})
	assert.Contains(t, buf.String(), "[DIFF] GET colleges")
}

func TestFetchRefusesWrites(t *testing.T) {
	r := requester{client: http.DefaultClient}
	_, err := r.fetch("http://localhost", target{Method: "DELETE", Path: "/students/2024-0001"})
	assert.Error(t, err)
}
