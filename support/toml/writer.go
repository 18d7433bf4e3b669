package toml

import (
	"bytes"
	"io/ioutil"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// WriteFile is a helper method to write toml files
func WriteFile(filePath string, v interface{}) error {
	var fileBuf bytes.Buffer
	encoder := toml.NewEncoder(&fileBuf)

	e := encoder.Encode(v)
	if e != nil {
		return errors.Wrap(e, "error encoding file as toml")
	}

	e = ioutil.WriteFile(filePath, fileBuf.Bytes(), 0644)
	if e != nil {
		return errors.Wrapf(e, "error writing toml file '%s'", filePath)
	}
	return nil
}

// ReadFile decodes the toml file at filePath into v, rejecting keys that v does not declare
func ReadFile(filePath string, v interface{}) error {
	md, e := toml.DecodeFile(filePath, v)
	if e != nil {
		return errors.Wrapf(e, "error decoding toml file '%s'", filePath)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.Errorf("unknown keys in toml file '%s': %v", filePath, undecoded)
	}
	return nil
}
