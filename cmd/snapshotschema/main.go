// Command snapshotschema reflects v3.Snapshot into a JSON Schema document
// for editor tooling and the A4 validator, grounded on mine-and-die's
// catalog schema generator.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/invopop/jsonschema"

	v3 "nu3adapter/v3"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "output path for the generated JSON schema")
	flag.Parse()

	if outPath == "" {
		log.Fatal("snapshotschema: missing -out path")
	}

	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.ReflectFromType(reflect.TypeOf(v3.Snapshot{}))
	schema.Version = jsonschema.Version
	schema.Title = "Nu turn snapshot"
	schema.Description = "JSON-over-HTTP turn snapshot accepted by Pack and produced alongside Maketurn commands."

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		log.Fatalf("snapshotschema: marshal schema: %v", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		log.Fatalf("snapshotschema: create output dir: %v", err)
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		log.Fatalf("snapshotschema: write schema: %v", err)
	}
}
