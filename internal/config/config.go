// Package config holds harvest's settings. Values are merged by viper from
// command-line flags, HARVEST_* environment variables and an optional YAML
// config file, then checked against an embedded CUE schema.
package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/viper"

	"github.com/roach88/harvest/internal/reference"
)

//go:embed schema.cue
var schemaCUE string

// EnvPrefix prefixes every environment variable, e.g.
// HARVEST_FASTA_LINE_WIDTH for fasta.line_width.
const EnvPrefix = "HARVEST"

// Keys.
const (
	KeyQuiet             = "quiet"
	KeyFastaLineWidth    = "fasta.line_width"
	KeyStrictIdentifiers = "identifiers.strict"
)

// Config is the merged settings of one run.
type Config struct {
	Quiet       bool             `mapstructure:"quiet" json:"quiet"`
	Fasta       FastaConfig      `mapstructure:"fasta" json:"fasta"`
	Identifiers IdentifierConfig `mapstructure:"identifiers" json:"identifiers"`
}

// FastaConfig controls FASTA-style output.
type FastaConfig struct {
	LineWidth int `mapstructure:"line_width" json:"line_width"`
}

// IdentifierConfig controls sequence-name resolution.
type IdentifierConfig struct {
	Strict bool `mapstructure:"strict" json:"strict"`
}

// New returns a viper instance with harvest's defaults and environment
// binding. Callers bind their flags to it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyFastaLineWidth, reference.DefaultLineWidth)
	v.SetDefault(KeyStrictIdentifiers, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (when non-empty) into v, decodes the merged settings and
// validates them.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := Validate(c); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks c against the embedded CUE schema.
func Validate(c Config) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	value := schema.LookupPath(cue.ParsePath("#Config")).Unify(ctx.Encode(c))
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("invalid config: %s", strings.TrimSpace(cueerrors.Details(err, nil)))
	}
	return nil
}
