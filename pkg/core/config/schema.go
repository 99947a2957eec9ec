package config

import (
	_ "embed"
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schema.cue
var schemaSource string

// Schema returns the CUE schema configurations are validated against
func Schema() string {
	return schemaSource
}

// Validate checks the configuration against the embedded CUE schema
func (c *Config) Validate() error {
	ctx := cuecontext.New()

	schema := ctx.CompileString("close({" + schemaSource + "})")
	if err := schema.Err(); err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	value := ctx.Encode(c)
	if err := value.Err(); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := schema.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
