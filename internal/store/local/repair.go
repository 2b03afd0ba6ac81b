package local

import (
	"encoding/json"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"copydesk/internal/domain/models"
)

// projectSchema gates stored project records before they are decoded into
// typed values. Records that fail the gate are repaired field by field
// instead of being dropped, because the blob may hold data written by
// older schema versions.
const projectSchema = `{
	"type": "object",
	"required": ["id", "name"],
	"properties": {
		"id":        {"type": "string", "minLength": 1},
		"name":      {"type": "string"},
		"personas":  {"type": "array"},
		"folders":   {"type": "array"},
		"documents": {"type": "array"},
		"snippets":  {"type": "array"}
	}
}`

var collectionKeys = []string{"personas", "folders", "documents", "snippets"}

func compileProjectSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(projectSchema))
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("project.json", doc); err != nil {
		panic(err)
	}
	return compiler.MustCompile("project.json")
}

var schema = compileProjectSchema()

// loadProjects reads the blob and returns a guaranteed-shape project
// list. Corruption at any level degrades to the closest usable value:
// unreadable blob becomes an empty list, malformed nested collections
// become empty lists, and only records beyond repair are skipped.
// Callers must hold s.mu.
func (s *Store) loadProjects() ([]models.Project, error) {
	raw, err := s.kv.Get(projectsKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return []models.Project{}, nil
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		s.logger.Warn("stored project list is not a JSON array, resetting", "error", err)
		return []models.Project{}, nil
	}

	projects := make([]models.Project, 0, len(elements))
	for i, element := range elements {
		project, ok := s.decodeProject(element)
		if !ok {
			s.logger.Warn("skipping unreadable project record", "index", i)
			continue
		}
		projects = append(projects, *project)
	}

	return projects, nil
}

// decodeProject validates a raw record against the schema, repairing
// coercible damage before giving up on it.
func (s *Store) decodeProject(raw json.RawMessage) (*models.Project, bool) {
	value, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, false
	}

	if err := schema.Validate(value); err != nil {
		repaired, ok := repairRecord(value)
		if !ok {
			return nil, false
		}
		if err := schema.Validate(repaired); err != nil {
			return nil, false
		}
		s.logger.Warn("repaired malformed project record")
		raw, err = json.Marshal(repaired)
		if err != nil {
			return nil, false
		}
	}

	var project models.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, false
	}

	normalizeProject(&project)
	return &project, true
}

// repairRecord coerces non-list nested collections to empty lists
func repairRecord(value any) (any, bool) {
	record, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}

	for _, key := range collectionKeys {
		current, present := record[key]
		if !present {
			continue
		}
		if _, isList := current.([]any); !isList {
			record[key] = []any{}
		}
	}

	return record, true
}

// normalizeProject replaces nil collections with empty slices so callers
// never see JSON null where a list belongs
func normalizeProject(project *models.Project) {
	if project.Personas == nil {
		project.Personas = []models.Persona{}
	}
	if project.Folders == nil {
		project.Folders = []models.Folder{}
	}
	if project.Documents == nil {
		project.Documents = []models.Document{}
	}
	if project.Snippets == nil {
		project.Snippets = []models.Snippet{}
	}
}
