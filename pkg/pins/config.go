package pins

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/wiregraph/pkg/errors"
)

// config is the TOML document shape.
type config struct {
	Component []Table `toml:"component"`
}

// Decode reads pin tables from a TOML document.
// Unknown keys are rejected so typos do not silently drop tables.
func Decode(r io.Reader) ([]Table, error) {
	var cfg config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPinTable, err, "decode pin tables")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidPinTable, "unknown key %q", undecoded[0].String())
	}
	for i, t := range cfg.Component {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("component #%d: %w", i+1, err)
		}
	}
	return cfg.Component, nil
}

// LoadFile reads pin tables from a TOML file.
func LoadFile(path string) ([]Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "pin tables %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	tables, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tables, nil
}

// Load returns the default registry extended with the tables in path.
// An empty path returns [Default].
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	tables, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return Default().With(tables...)
}

// Encode writes tables as a TOML document accepted by [Decode].
func Encode(w io.Writer, tables []Table) error {
	return toml.NewEncoder(w).Encode(config{Component: tables})
}
