// Package graph renders the reference catalog as an interactive network
// diagram: a static HTML page embedding cytoscape.js elements, with the
// graph data carried as base64-encoded JSON.
package graph

import (
	_ "embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/microbiomedata/refscan/internal/catalog"
)

//go:embed template.html
var templateHTML string

// Subject is what each node of the graph represents.
type Subject string

const (
	SubjectCollection Subject = "collection"
	SubjectClass      Subject = "class"
)

// ParseSubject validates a user-supplied subject value.
func ParseSubject(value string) (Subject, error) {
	switch Subject(strings.ToLower(value)) {
	case SubjectCollection:
		return SubjectCollection, nil
	case SubjectClass:
		return SubjectClass, nil
	default:
		return "", fmt.Errorf("invalid graph subject %q (want %q or %q)", value, SubjectCollection, SubjectClass)
	}
}

// Metadata labels the generated page.
type Metadata struct {
	AppVersion    string
	SchemaVersion string
}

// element is one cytoscape node or edge.
type element struct {
	Data map[string]any `json:"data"`
}

// Render generates the HTML page for the catalog's references. When the
// subject is class, isAbstract flags abstract classes so they can be drawn
// differently; it is ignored for collection graphs.
func Render(refs []catalog.Reference, subject Subject, isAbstract func(className string) bool, meta Metadata) (string, error) {
	var nodes, edges []element
	nodeIndex := make(map[string]struct{})
	edgeIndex := make(map[string]*element)
	var edgeOrder []string

	addNode := func(name string) {
		if _, exists := nodeIndex[name]; exists {
			return
		}
		nodeIndex[name] = struct{}{}
		data := map[string]any{"id": name}
		if subject == SubjectClass && isAbstract != nil {
			data["is_abstract"] = isAbstract(name)
		}
		nodes = append(nodes, element{Data: data})
	}

	for _, ref := range refs {
		sourceName, targetName := ref.SourceCollectionName, ref.TargetCollectionName
		if subject == SubjectClass {
			sourceName, targetName = ref.SourceClassName, ref.TargetClassName
		}
		addNode(sourceName)
		addNode(targetName)

		edgeID := sourceName + "__to__" + targetName
		edge, exists := edgeIndex[edgeID]
		if !exists {
			edge = &element{Data: map[string]any{
				"id":            edgeID,
				"source":        sourceName,
				"target":        targetName,
				"source_fields": []string{},
			}}
			edgeIndex[edgeID] = edge
			edgeOrder = append(edgeOrder, edgeID)
		}
		fields := edge.Data["source_fields"].([]string)
		if !containsString(fields, ref.SourceFieldName) {
			edge.Data["source_fields"] = append(fields, ref.SourceFieldName)
		}
	}

	// Collapse each edge's field list into a comma-delimited label.
	for _, edgeID := range edgeOrder {
		edge := edgeIndex[edgeID]
		fields := edge.Data["source_fields"].([]string)
		delete(edge.Data, "source_fields")
		edge.Data["label"] = strings.Join(fields, ", ")
		edges = append(edges, *edge)
	}

	elements := append(nodes, edges...)
	elementsJSON, err := encodeBase64JSON(elements)
	if err != nil {
		return "", fmt.Errorf("encoding graph elements: %w", err)
	}

	subjectSingular, subjectPlural := "collection", "collections"
	if subject == SubjectClass {
		subjectSingular, subjectPlural = "class", "classes"
	}
	metadataJSON, err := encodeBase64JSON(map[string]string{
		"app_version":      meta.AppVersion,
		"schema_version":   meta.SchemaVersion,
		"subject_singular": subjectSingular,
		"subject_plural":   subjectPlural,
	})
	if err != nil {
		return "", fmt.Errorf("encoding graph metadata: %w", err)
	}

	html := strings.ReplaceAll(templateHTML, "{{ graph_data_json_base64 }}", elementsJSON)
	html = strings.ReplaceAll(html, "{{ graph_metadata_json_base64 }}", metadataJSON)
	return html, nil
}

// NodeCount returns how many distinct nodes the catalog yields for a
// subject, for console output.
func NodeCount(refs []catalog.Reference, subject Subject) (nodes, edges int) {
	nodeIndex := make(map[string]struct{})
	edgeIndex := make(map[string]struct{})
	for _, ref := range refs {
		sourceName, targetName := ref.SourceCollectionName, ref.TargetCollectionName
		if subject == SubjectClass {
			sourceName, targetName = ref.SourceClassName, ref.TargetClassName
		}
		nodeIndex[sourceName] = struct{}{}
		nodeIndex[targetName] = struct{}{}
		edgeIndex[sourceName+"__to__"+targetName] = struct{}{}
	}
	return len(nodeIndex), len(edgeIndex)
}

func encodeBase64JSON(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func containsString(items []string, value string) bool {
	for _, item := range items {
		if item == value {
			return true
		}
	}
	return false
}
