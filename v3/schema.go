package v3

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sync"

	"github.com/invopop/jsonschema"
	validator "github.com/santhosh-tekuri/jsonschema/v5"
)

// snapshotSchemaURL is an arbitrary identifier the validator resolves the
// in-memory schema document under; no network fetch ever happens.
const snapshotSchemaURL = "nu3adapter://snapshot.schema.json"

var (
	snapshotSchemaOnce sync.Once
	snapshotSchema     *validator.Schema
	snapshotSchemaErr  error
)

// buildSnapshotSchema reflects Snapshot into a JSON Schema document, the
// same shape cmd/snapshotschema writes to disk for editor tooling.
func buildSnapshotSchema() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: false,
		DoNotReference:             true,
	}
	schema := reflector.ReflectFromType(reflect.TypeOf(Snapshot{}))
	schema.Version = jsonschema.Version
	schema.Title = "Nu turn snapshot"
	schema.Description = "JSON-over-HTTP turn snapshot accepted by Pack and produced alongside Maketurn commands."
	return schema
}

func compileSnapshotSchema() (*validator.Schema, error) {
	doc := buildSnapshotSchema()
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, newErr(IO, err, "marshal generated snapshot schema")
	}
	compiler := validator.NewCompiler()
	if err := compiler.AddResource(snapshotSchemaURL, bytes.NewReader(raw)); err != nil {
		return nil, newErr(InputShape, err, "add generated snapshot schema resource")
	}
	return compiler.Compile(snapshotSchemaURL)
}

// ValidateSnapshot runs the reflected JSON Schema over raw decoded
// snapshot JSON, grounded on voxelcraft's jsonschema.Compile+Validate
// pattern. The schema is compiled once and cached; this is the mechanism
// behind the "snapshot missing a required sub-object" InputShape class.
func ValidateSnapshot(data []byte) error {
	snapshotSchemaOnce.Do(func() {
		snapshotSchema, snapshotSchemaErr = compileSnapshotSchema()
	})
	if snapshotSchemaErr != nil {
		return newErr(InputShape, snapshotSchemaErr, "compile snapshot schema")
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return newErr(InputShape, err, "decode snapshot JSON for schema validation")
	}
	if err := snapshotSchema.Validate(v); err != nil {
		return newErr(InputShape, err, "snapshot failed schema validation")
	}
	return nil
}
