package schema

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

// Embedded schema names.
const (
	Scaffold = "scaffold.schema.json"
	Settings = "settings.schema.json"
)

var (
	compiled    map[string]*jsonschema.Schema
	compileOnce sync.Once
	compileErr  error
	printer     = message.NewPrinter(language.English)
)

// ValidationResult contains the outcome of a schema validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// ValidationIssue represents a single validation error from the schema.
type ValidationIssue struct {
	Path    string // Instance location (e.g., "/library")
	Message string // Human-readable error message
	Keyword string // Schema keyword location that failed
}

// String renders the issue as "path: message".
func (i ValidationIssue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

// InvalidError is returned when a document fails its schema.
type InvalidError struct {
	Subject string
	Issues  []ValidationIssue
}

func (e *InvalidError) Error() string {
	msgs := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		msgs = append(msgs, issue.String())
	}
	return fmt.Sprintf("invalid %s: %s", e.Subject, strings.Join(msgs, "; "))
}

// Err converts a failed result into an *InvalidError. A valid result yields nil.
func (r *ValidationResult) Err(subject string) error {
	if r.Valid {
		return nil
	}
	return &InvalidError{Subject: subject, Issues: r.Issues}
}

// getSchema compiles the embedded JSON schemas once and returns the named one.
func getSchema(name string) (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for _, n := range []string{Scaffold, Settings} {
			raw, err := schemaFS.ReadFile("schema/" + n)
			if err != nil {
				compileErr = fmt.Errorf("reading schema %s: %w", n, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
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
		for _, n := range []string{Scaffold, Settings} {
			sch, err := c.Compile(n)
			if err != nil {
				compileErr = fmt.Errorf("compiling schema %s: %w", n, err)
				return
			}
			compiled[n] = sch
		}
	})
	if compileErr != nil {
		return nil, compileErr
	}
	sch, ok := compiled[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return sch, nil
}

// Validate validates a Go value against the named schema. The value is
// round-tripped through encoding/json, so json struct tags decide the
// property names. The error return is for encoding or schema compilation
// failures; validation issues are returned in the ValidationResult.
func Validate(name string, v interface{}) (*ValidationResult, error) {
	jsonData, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	return validateJSON(name, jsonData)
}

// ValidateYAML validates raw YAML bytes against the named schema. Scalars
// are kept as their literal text so that "3.10" stays a version string
// rather than collapsing to the float 3.1.
func ValidateYAML(name string, data []byte) (*ValidationResult, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	var raw interface{} = map[string]interface{}{}
	if len(root.Content) > 0 {
		raw = normalizeNode(root.Content[0])
	}

	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("converting to JSON: %w", err)
	}
	return validateJSON(name, jsonData)
}

// ValidateFile reads a YAML file and validates it against the named schema.
func ValidateFile(name, path string) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return ValidateYAML(name, data)
}

func validateJSON(name string, jsonData []byte) (*ValidationResult, error) {
	sch, err := getSchema(name)
	if err != nil {
		return nil, fmt.Errorf("loading schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("preparing JSON for validation: %w", err)
	}

	err = sch.Validate(inst)
	if err == nil {
		return &ValidationResult{Valid: true}, nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, fmt.Errorf("unexpected validation error type: %w", err)
	}

	return &ValidationResult{
		Valid:  false,
		Issues: extractIssues(validationErr),
	}, nil
}

// extractIssues walks the ValidationError tree and returns leaf-level issues.
func extractIssues(ve *jsonschema.ValidationError) []ValidationIssue {
	var issues []ValidationIssue
	collectValidationIssues(ve, &issues)

	if len(issues) == 0 {
		return []ValidationIssue{{
			Message: ve.Error(),
		}}
	}
	return deduplicateIssues(issues)
}

// collectValidationIssues recursively walks the error tree to find leaf errors
// with specific property information.
func collectValidationIssues(ve *jsonschema.ValidationError, issues *[]ValidationIssue) {
	if len(ve.Causes) == 0 {
		path := "/" + strings.Join(ve.InstanceLocation, "/")
		if len(ve.InstanceLocation) == 0 {
			path = ""
		}

		keyword := ""
		msg := ""
		if ve.ErrorKind != nil {
			kwPath := ve.ErrorKind.KeywordPath()
			if len(kwPath) > 0 {
				keyword = kwPath[len(kwPath)-1]
			}
			msg = ve.ErrorKind.LocalizedString(printer)
		}

		// Container keywords only repeat what their causes already say.
		if keyword == "allOf" || keyword == "$ref" || keyword == "" {
			return
		}

		*issues = append(*issues, ValidationIssue{
			Path:    path,
			Message: msg,
			Keyword: keyword,
		})
		return
	}

	for _, cause := range ve.Causes {
		collectValidationIssues(cause, issues)
	}
}

// deduplicateIssues removes duplicate issues (same path + keyword + message).
func deduplicateIssues(issues []ValidationIssue) []ValidationIssue {
	seen := make(map[string]bool)
	var result []ValidationIssue
	for _, issue := range issues {
		key := issue.Path + "|" + issue.Keyword + "|" + issue.Message
		if !seen[key] {
			seen[key] = true
			result = append(result, issue)
		}
	}
	return result
}

// normalizeNode converts a YAML node tree to JSON-compatible values with
// every scalar kept as a string.
func normalizeNode(n *yaml.Node) interface{} {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil
		}
		return normalizeNode(n.Content[0])
	case yaml.MappingNode:
		m := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			m[n.Content[i].Value] = normalizeNode(n.Content[i+1])
		}
		return m
	case yaml.SequenceNode:
		a := make([]interface{}, len(n.Content))
		for i, c := range n.Content {
			a[i] = normalizeNode(c)
		}
		return a
	case yaml.AliasNode:
		if n.Alias != nil {
			return normalizeNode(n.Alias)
		}
		return nil
	default:
		if n.Tag == "!!null" {
			return nil
		}
		return n.Value
	}
}
