package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rangeset.yaml")
	assert.NoError(t, os.WriteFile(path, []byte("debug: true\necho: true\n"), 0o600))

	cases := map[string]struct {
		path        string
		env         map[string]string
		want        Config
		expectedErr bool
	}{
		"File": {
			path: path,
			want: Config{Debug: true, Echo: true},
		},
		"EnvOverridesFile": {
			path: path,
			env:  map[string]string{"RANGESET_ECHO": "false"},
			want: Config{Debug: true, Echo: false},
		},
		"MissingExplicitFile": {
			path:        filepath.Join(dir, "missing.yaml"),
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(viper.New(), tc.path)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, *cfg)
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	assert.NoError(t, err)
	assert.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(viper.New(), "")
	assert.NoError(t, err)
	assert.Equal(t, Config{}, *cfg)
}
