package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dekarrin/cpq/internal/version"
)

func Test_Default(t *testing.T) {
	assert := assert.New(t)

	c := Default()

	assert.Equal("qud", c.Output.Extension)
	assert.Equal(version.Signature, c.Output.Signature)
	assert.Equal(":8424", c.Server.Address)
	assert.Zero(c.Exec.MaxSteps)
}

func Test_Load_missingDefaultFileUsesDefaults(t *testing.T) {
	assert := assert.New(t)

	oldWd, _ := os.Getwd()
	defer os.Chdir(oldWd)
	os.Chdir(t.TempDir())

	c, err := Load(DefaultPath)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(Default(), c)
}

func Test_Load_missingExplicitFileIsAnError(t *testing.T) {
	assert := assert.New(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(err)
}

func Test_Load_overridesLayerOverDefaults(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "cpq.toml")
	content := "[output]\nsignature = \"compiled by test\"\n\n[exec]\nmax_steps = 500\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	c, err := Load(path)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("compiled by test", c.Output.Signature)
	assert.Equal(500, c.Exec.MaxSteps)

	// untouched keys keep their defaults
	assert.Equal("qud", c.Output.Extension)
	assert.Equal(":8424", c.Server.Address)
}

func Test_Load_badTOML(t *testing.T) {
	assert := assert.New(t)

	path := filepath.Join(t.TempDir(), "cpq.toml")
	if err := os.WriteFile(path, []byte("not [valid\ttoml"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, err := Load(path)
	assert.Error(err)
}
