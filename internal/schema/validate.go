// Package schema provides JSON schema validation for the testreg manifest.
package schema

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	schemafs "github.com/AndreyAkinshin/testreg/schema"
)

var (
	manifestSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchemas compiles all embedded schemas once.
func compileSchemas() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		manifestData, err := schemafs.FS.ReadFile("manifest.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read manifest schema: %w", err)
			return
		}

		manifestDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(manifestData))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal manifest schema: %w", err)
			return
		}

		if err := compiler.AddResource("manifest.schema.json", manifestDoc); err != nil {
			compileErr = fmt.Errorf("add manifest schema resource: %w", err)
			return
		}

		manifestSchema, err = compiler.Compile("manifest.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile manifest schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidateManifest validates a decoded manifest document against the schema.
// The document is the generic form produced by yaml.Unmarshal into interface{}.
func ValidateManifest(doc any) error {
	if err := compileSchemas(); err != nil {
		return err
	}

	if err := manifestSchema.Validate(doc); err != nil {
		return fmt.Errorf("manifest validation failed: %w", err)
	}

	return nil
}
