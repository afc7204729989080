package extension

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	entrySchema = "entry.schema.json"
	groupSchema = "group.schema.json"
)

var (
	compiled    map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// getSchema compiles the embedded schemas once and returns the named one.
func getSchema(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, n := range []string{entrySchema, groupSchema} {
			data, err := schemaFS.ReadFile("schema/" + n)
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", n, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
			if err != nil {
				compileErr = fmt.Errorf("unmarshaling schema %s: %w", n, err)
				return
			}
			if err := c.AddResource(n, doc); err != nil {
				compileErr = fmt.Errorf("adding schema resource %s: %w", n, err)
				return
			}
		}

		compiled = make(map[string]*jsonschema.Schema, 2)
		for _, n := range []string{entrySchema, groupSchema} {
			s, err := c.Compile(n)
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", n, err)
				return
			}
			compiled[n] = s
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	return compiled[name], nil
}

// decodeValue is decodeRecord for a value already decoded as generic JSON.
func decodeValue(schemaName string, value, dst any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	return decodeRecord(schemaName, raw, dst)
}

// decodeRecord validates one raw JSON record against the named schema and
// decodes it into dst.
func decodeRecord(schemaName string, raw []byte, dst any) error {
	schema, err := getSchema(schemaName)
	if err != nil {
		return fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parsing record: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return errors.New(summarize(ve))
		}
		return err
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}
	return nil
}

// summarize flattens the leaf errors of a validation failure into one line,
// e.g. "/cmd: missing property 'cmd'". Container keywords are skipped.
func summarize(ve *jsonschema.ValidationError) string {
	var parts []string
	seen := make(map[string]bool)

	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, cause := range e.Causes {
				walk(cause)
			}
			return
		}
		if e.ErrorKind == nil {
			return
		}
		kw := e.ErrorKind.KeywordPath()
		if len(kw) > 0 {
			switch kw[len(kw)-1] {
			case "allOf", "oneOf", "$ref":
				return
			}
		}
		msg := "/" + strings.Join(e.InstanceLocation, "/") + ": " + e.ErrorKind.LocalizedString(printer)
		if !seen[msg] {
			seen[msg] = true
			parts = append(parts, msg)
		}
	}
	walk(ve)

	if len(parts) == 0 {
		return ve.Error()
	}
	return strings.Join(parts, "; ")
}
