package toml

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Port   uint16 `toml:"PORT"`
	Origin string `toml:"ORIGIN"`
}

func TestWriteThenReadFile(t *testing.T) {
	dir, e := ioutil.TempDir("", "pingd-toml")
	if !assert.NoError(t, e) {
		return
	}
	defer os.RemoveAll(dir)

	filePath := filepath.Join(dir, "sample.cfg")
	if !assert.NoError(t, WriteFile(filePath, sample{Port: 9000, Origin: "localhost:3000"})) {
		return
	}

	var got sample
	if !assert.NoError(t, ReadFile(filePath, &got)) {
		return
	}
	assert.Equal(t, sample{Port: 9000, Origin: "localhost:3000"}, got)
}

func TestReadFile_UnknownKey(t *testing.T) {
	dir, e := ioutil.TempDir("", "pingd-toml")
	if !assert.NoError(t, e) {
		return
	}
	defer os.RemoveAll(dir)

	filePath := filepath.Join(dir, "sample.cfg")
	if !assert.NoError(t, ioutil.WriteFile(filePath, []byte("PORT = 1\nPROT = 2\n"), 0644)) {
		return
	}

	e = ReadFile(filePath, &sample{})
	if assert.Error(t, e) {
		assert.Contains(t, e.Error(), "PROT")
	}
}

func TestReadFile_Missing(t *testing.T) {
	e := ReadFile("/nonexistent/pingd.cfg", &sample{})
	assert.Error(t, e)
}
