package pipeline

import (
	"bytes"
	stderrors "errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/scatterspec/pkg/errors"
)

// LoadConfig reads options from a TOML (.toml) or YAML (.yaml, .yml) file.
// Unknown keys are rejected. Relative input and output paths are resolved
// against the directory holding the config file.
func LoadConfig(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Options{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file not found: %s", path)
		}
		return Options{}, errors.Wrap(errors.ErrCodeIO, err, "read config %s", path)
	}

	var opts Options
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), &opts)
		if err != nil {
			return Options{}, errors.Wrap(errors.ErrCodeParse, err, "parse config %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Options{}, errors.New(errors.ErrCodeParse, "unknown config key %q in %s", undecoded[0].String(), path)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !stderrors.Is(err, io.EOF) {
			return Options{}, errors.Wrap(errors.ErrCodeParse, err, "parse config %s", path)
		}
	default:
		return Options{}, errors.New(errors.ErrCodeUsage, "config file %s must end in .toml, .yaml or .yml", path)
	}

	base := filepath.Dir(path)
	for _, p := range []*string{&opts.FileA, &opts.FileB, &opts.SpecFile, &opts.Dir} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	return opts, nil
}
