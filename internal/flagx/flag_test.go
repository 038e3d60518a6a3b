package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-a", "http://localhost:3000/api/v1", "-l", "debug"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a", "http://localhost:3000/api/v1"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=openmat.json", "-a", "x"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=openmat.json"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
		{
			name:         "trailing flag without value kept",
			args:         []string{"-t"},
			allowedFlags: []string{"-t"},
			want:         []string{"-t"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-d", "-l", "debug"},
			allowedFlags: []string{"-d", "-l"},
			want:         []string{"-d", "-l", "debug"},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short form", func(t *testing.T) {
		os.Args = []string{"openmat", "-c", "/etc/openmat.json"}
		assert.Equal(t, "/etc/openmat.json", ConfigFilePath())
	})

	t.Run("long form", func(t *testing.T) {
		os.Args = []string{"openmat", "-config", "/tmp/o.json", "-a", "http://x"}
		assert.Equal(t, "/tmp/o.json", ConfigFilePath())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"openmat", "-l", "debug"}
		assert.Empty(t, ConfigFilePath())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"openmat", "-c", "/a.json", "-config", "/b.json"}
		assert.Equal(t, "/b.json", ConfigFilePath())
	})
}
