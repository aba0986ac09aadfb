package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/poiesic/mailidx/core"
	"github.com/poiesic/mailidx/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Preflight(t *testing.T) {
	_, err := NewClient("", "key")
	assert.ErrorIs(t, err, index.ErrHostRequired)

	_, err = NewClient("index.example.io", "")
	assert.ErrorIs(t, err, index.ErrCredentialRequired)
}

func TestNewClient_NormalizesHost(t *testing.T) {
	client, err := NewClient("index.example.io", "key")
	require.NoError(t, err)
	assert.Equal(t, "https://index.example.io", client.host)

	client, err = NewClient("https://index.example.io/", "key")
	require.NoError(t, err)
	assert.Equal(t, "https://index.example.io", client.host)
}

func TestClient_Upsert(t *testing.T) {
	var received upsertRequest
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vectors/upsert", r.URL.Path)
		gotKey = r.Header.Get("Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "secret")
	require.NoError(t, err)

	err = client.Upsert(context.Background(), core.VectorRecord{
		ID:     "thread-1",
		Values: []float32{0.1, 0.2},
		Metadata: map[string]any{
			"subject":   "Mula Daily Digest - Oct 1",
			"publisher": "pub_002",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "secret", gotKey)
	require.Len(t, received.Vectors, 1)
	assert.Equal(t, "thread-1", received.Vectors[0].ID)
	assert.Equal(t, "pub_002", received.Vectors[0].Metadata["publisher"])
}

func TestClient_Upsert_EmptyRecordSet(t *testing.T) {
	client, err := NewClient("index.example.io", "key")
	require.NoError(t, err)

	err = client.Upsert(context.Background())
	assert.ErrorIs(t, err, index.ErrNoRecords)
}

func TestClient_Upsert_ServiceFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key")
	require.NoError(t, err)

	err = client.Upsert(context.Background(), core.VectorRecord{
		ID:     "thread-1",
		Values: []float32{0.1},
	})
	assert.Error(t, err)
}

func TestClient_Upsert_CapsMetadataText(t *testing.T) {
	var received upsertRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, "key")
	require.NoError(t, err)

	err = client.Upsert(context.Background(), core.VectorRecord{
		ID:     "thread-1",
		Values: []float32{0.1},
		Metadata: map[string]any{
			"text":  strings.Repeat("x", MaxMetadataChars+500),
			"count": 3,
		},
	})
	require.NoError(t, err)

	require.Len(t, received.Vectors, 1)
	text, ok := received.Vectors[0].Metadata["text"].(string)
	require.True(t, ok)
	assert.Len(t, text, MaxMetadataChars)
	assert.EqualValues(t, 3, received.Vectors[0].Metadata["count"])
}

func TestDiscover_Preflight(t *testing.T) {
	_, err := Discover(context.Background(), "", "us-east1-gcp", "key")
	assert.ErrorIs(t, err, index.ErrDiscoveryFailed)

	_, err = Discover(context.Background(), "threads", "us-east1-gcp", "")
	assert.ErrorIs(t, err, index.ErrDiscoveryFailed)
}

func TestDiscover_ResolvesHost(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("Api-Key"))
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":{"host":"threads-abc123.svc.us-east1-gcp.pinecone.io"}}`))
	}))
	defer server.Close()

	host, err := discover(context.Background(), server.URL, "key")
	require.NoError(t, err)
	assert.Equal(t, "threads-abc123.svc.us-east1-gcp.pinecone.io", host)
}

func TestDiscover_MissingHostField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":{}}`))
	}))
	defer server.Close()

	_, err := discover(context.Background(), server.URL, "key")
	assert.ErrorIs(t, err, index.ErrDiscoveryFailed)
}

func TestDiscover_ControllerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := discover(context.Background(), server.URL, "key")
	assert.ErrorIs(t, err, index.ErrDiscoveryFailed)
}
