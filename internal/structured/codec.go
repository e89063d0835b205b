package structured

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	"github.com/dshills/ropekit/internal/engine/rope"
)

//go:embed schema.json
var schemaBytes []byte

var loadSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaBytes))
})

// Encode writes rec in the given format.
// A nil record, the form of a rope with no nodes, is written as an empty branch.
func Encode(w io.Writer, f Format, rec *rope.Record) error {
	if rec == nil {
		size := 0
		rec = &rope.Record{Kind: rope.KindBranch, Size: &size}
	}

	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return err
		}
		return enc.Close()
	case TOML:
		return toml.NewEncoder(w).Encode(rec)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Decode reads a record in the given format and checks it against the schema.
func Decode(r io.Reader, f Format) (*rope.Record, error) {
	return decode(r, f, "<reader>")
}

func decode(r io.Reader, f Format, source string) (*rope.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	var generic any
	if err := unmarshal(data, f, &generic); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	if err := Check(generic, source); err != nil {
		return nil, err
	}

	var rec rope.Record
	if err := unmarshal(data, f, &rec); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", source, err)
	}
	return &rec, nil
}

func unmarshal(data []byte, f Format, v any) error {
	switch f {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		return dec.Decode(v)
	case YAML:
		return yaml.Unmarshal(data, v)
	case TOML:
		return toml.Unmarshal(data, v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Check validates a generic decoded document against the record schema.
func Check(doc any, source string) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("loading rope schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("validating %s: %w", source, err)
	}
	if result.Valid() {
		return nil
	}

	schemaErr := &SchemaError{Source: source}
	for _, e := range result.Errors() {
		schemaErr.Problems = append(schemaErr.Problems, Problem{
			Field:       e.Field(),
			Description: e.Description(),
		})
	}
	return schemaErr
}

// Load decodes a rope from r.
func Load(r io.Reader, f Format) (rope.Rope, error) {
	rec, err := Decode(r, f)
	if err != nil {
		return rope.Rope{}, err
	}
	return rope.FromRecord(rec)
}

// ReadFile decodes a rope from a file, choosing the format by extension.
func ReadFile(path string) (rope.Rope, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return rope.Rope{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return rope.Rope{}, err
	}
	defer file.Close()

	rec, err := decode(file, f, path)
	if err != nil {
		return rope.Rope{}, err
	}
	r, err := rope.FromRecord(rec)
	if err != nil {
		return rope.Rope{}, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// WriteFile encodes r to a file in the given format.
func WriteFile(path string, f Format, r rope.Rope) error {
	var buf bytes.Buffer
	if err := Encode(&buf, f, r.Record()); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
