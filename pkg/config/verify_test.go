package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(cfg *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(cfg *Config) {}},
		{name: "missing listen", modify: func(cfg *Config) { cfg.Server.Listen = "" }, wantErr: true,
			errMsg: "server.listen is required"},
		{name: "missing server timeout", modify: func(cfg *Config) { cfg.Server.Timeout = 0 }, wantErr: true,
			errMsg: "server.timeout is required"},
		{name: "missing fetch timeout", modify: func(cfg *Config) { cfg.Fetch.Timeout = 0 }, wantErr: true,
			errMsg: "fetch.timeout is required"},
		{name: "store without dsn", modify: func(cfg *Config) { cfg.Store.Enabled, cfg.Store.DSN = true, "" },
			wantErr: true, errMsg: "store.dsn is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	generated, err := GenerateSchema()
	require.NoError(t, err)

	var embedded struct {
		Defs map[string]struct {
			Properties map[string]any `json:"properties"`
		} `json:"$defs"`
	}
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &embedded))

	for name, def := range generated.Definitions {
		emb, ok := embedded.Defs[name]
		require.True(t, ok, "definition %s missing in schema.json", name)
		for pair := def.Properties.Oldest(); pair != nil; pair = pair.Next() {
			_, ok := emb.Properties[pair.Key]
			assert.True(t, ok, "property %s.%s missing in schema.json", name, pair.Key)
		}
	}
}
