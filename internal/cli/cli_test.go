package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand("test", "none", "unknown")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "", "demo")
	assert.NoError(t, err)

	want := []string{
		"[1, 5)",
		"[1, 5) [10, 20)",
		"[1, 5) [10, 20)",
		"[1, 5) [10, 21)",
		"[1, 5) [10, 21)",
		"[1, 8) [10, 21)",
		"[1, 8) [10, 21)",
		"[1, 8) [11, 21)",
		"[1, 8) [11, 15) [17, 21)",
		"[1, 3) [19, 21)",
	}
	if diff := cmp.Diff(want, strings.Split(strings.TrimSuffix(out, "\n"), "\n")); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ops.txt")
	assert.NoError(t, os.WriteFile(path, []byte("add 0 100\nremove [40, 60)\nprint\n"), 0o600))

	cases := map[string]struct {
		args        []string
		stdin       string
		want        string
		expectedErr bool
	}{
		"File": {
			args: []string{"run", path},
			want: "[0, 40) [60, 100)\n",
		},
		"Stdin": {
			args:  []string{"run", "-"},
			stdin: "add 1 5\nadd 5 10\nprint\n",
			want:  "[1, 10)\n",
		},
		"Echo": {
			args:  []string{"run", "--echo", "-"},
			stdin: "add 1 5\nremove 2 3\n",
			want:  "[1, 5)\n[1, 2) [3, 5)\n",
		},
		"InvalidRange": {
			args:        []string{"run", "-"},
			stdin:       "add 1 five\n",
			expectedErr: true,
		},
		"MissingFile": {
			args:        []string{"run", filepath.Join(dir, "missing.txt")},
			expectedErr: true,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, tc.stdin, tc.args...)
			if tc.expectedErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestIP(t *testing.T) {
	out, err := execute(t, "", "ip", "add", "10.0.0.0/24", "remove", "10.0.0.10-10.0.0.19")
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.0-10.0.0.9 10.0.0.20-10.0.0.255\n", out)

	_, err = execute(t, "", "ip", "add")
	assert.Error(t, err)

	_, err = execute(t, "", "ip", "merge", "10.0.0.1")
	assert.Error(t, err)
}
