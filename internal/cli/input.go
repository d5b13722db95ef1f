package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/takimoto3/apnscodec"
	"github.com/takimoto3/apnscodec/payload"
	"gopkg.in/yaml.v3"
)

// stdinName selects standard input in place of a file name.
const stdinName = "-"

func readInput(name string, stdin io.Reader) ([]byte, error) {
	if name == stdinName {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(name)
}

func isYAML(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// decode reads a payload document. YAML files are converted to the generic
// value tree and validated; everything else is decoded as wire JSON.
func decode(name string, data []byte, opts []payload.Option) (apnscodec.Payload, payload.Violations, error) {
	if !isYAML(name) {
		return apnscodec.DecodePayload(data, opts...)
	}
	var tree any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return apnscodec.Payload{}, nil, fmt.Errorf("malformed YAML: %w", err)
	}
	p, vs := apnscodec.ValidatePayload(tree, opts...)
	return p, vs, nil
}
