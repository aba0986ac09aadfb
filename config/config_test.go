package config

import (
	"context"
	"testing"

	"github.com/poiesic/mailidx/extract"
	"github.com/poiesic/mailidx/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	store, err := badger.NewMemoryStateStore()
	require.NoError(t, err)
	defer store.Close()

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("PINECONE_API_KEY", "")

	cfg, err := Load(context.Background(), store)
	require.NoError(t, err)

	assert.Equal(t, extract.DefaultTargetParticipant, cfg.TargetAddress)
	assert.Equal(t, extract.DefaultSubjectPrefix, cfg.SubjectPrefix)
	assert.Empty(t, cfg.InternalDomains)
	assert.False(t, cfg.Complete())
}

func TestLoad_FromStore(t *testing.T) {
	store, err := badger.NewMemoryStateStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.SetConfigValue(ctx, KeyOpenAIAPIKey, "sk-test"))
	require.NoError(t, store.SetConfigValue(ctx, KeyPineconeAPIKey, "pc-test"))
	require.NoError(t, store.SetConfigValue(ctx, KeyEnvironment, "us-east1-gcp"))
	require.NoError(t, store.SetConfigValue(ctx, KeyIndexName, "threads"))
	require.NoError(t, store.SetConfigValue(ctx, KeyInternalDomains, " OfflineStudio.com , mula.news "))

	cfg, err := Load(ctx, store)
	require.NoError(t, err)

	assert.True(t, cfg.Complete())
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"offlinestudio.com", "mula.news"}, cfg.InternalDomains)
}

func TestLoad_EnvironmentFallbackForCredentials(t *testing.T) {
	store, err := badger.NewMemoryStateStore()
	require.NoError(t, err)
	defer store.Close()

	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("PINECONE_API_KEY", "pc-env")

	cfg, err := Load(context.Background(), store)
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.OpenAIAPIKey)
	assert.Equal(t, "pc-env", cfg.PineconeAPIKey)
}

func TestValidate_ReportsMissingKeys(t *testing.T) {
	cfg := &Config{OpenAIAPIKey: "sk-test"}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), KeyPineconeAPIKey)
	assert.Contains(t, err.Error(), KeyEnvironment)
	assert.Contains(t, err.Error(), KeyIndexName)
	assert.NotContains(t, err.Error(), KeyOpenAIAPIKey)
}
