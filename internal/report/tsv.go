// Package report serializes reference catalogs and violation lists into
// tab-separated report files. The column layout is a persisted artifact
// consumed downstream, so it stays bit-exact: a header row of field names in
// declaration order, then one row per item.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/microbiomedata/refscan/internal/catalog"
)

var referenceColumns = []string{
	"source_collection_name",
	"source_class_name",
	"source_field_name",
	"target_collection_name",
	"target_class_name",
}

var violationColumns = []string{
	"source_collection_name",
	"source_class_name",
	"source_field_name",
	"source_document_object_id",
	"source_document_id",
	"target_id",
	"name_of_collection_containing_target",
}

// WriteReferences writes the reference report.
func WriteReferences(w io.Writer, refs []catalog.Reference) error {
	tsv := newTSVWriter(w)
	if err := tsv.Write(referenceColumns); err != nil {
		return fmt.Errorf("writing reference report header: %w", err)
	}
	for _, ref := range refs {
		row := []string{
			ref.SourceCollectionName,
			ref.SourceClassName,
			ref.SourceFieldName,
			ref.TargetCollectionName,
			ref.TargetClassName,
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("writing reference report row: %w", err)
		}
	}
	tsv.Flush()
	return tsv.Error()
}

// WriteViolations writes the violation report. The final column (the
// collection a misplaced target was actually found in) may be omitted.
func WriteViolations(w io.Writer, violations []catalog.Violation, includeCollectionContainingTarget bool) error {
	columns := violationColumns
	if !includeCollectionContainingTarget {
		columns = columns[:len(columns)-1]
	}
	tsv := newTSVWriter(w)
	if err := tsv.Write(columns); err != nil {
		return fmt.Errorf("writing violation report header: %w", err)
	}
	for _, v := range violations {
		row := []string{
			v.SourceCollectionName,
			v.SourceClassName,
			v.SourceFieldName,
			v.SourceDocumentObjectID,
			v.SourceDocumentID,
			v.TargetID,
			v.NameOfCollectionContainingTarget,
		}
		if !includeCollectionContainingTarget {
			row = row[:len(row)-1]
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("writing violation report row: %w", err)
		}
	}
	tsv.Flush()
	return tsv.Error()
}

// WriteReferencesFile writes the reference report to a file.
func WriteReferencesFile(path string, refs []catalog.Reference) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteReferences(w, refs)
	})
}

// WriteViolationsFile writes the violation report to a file.
func WriteViolationsFile(path string, violations []catalog.Violation, includeCollectionContainingTarget bool) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteViolations(w, violations, includeCollectionContainingTarget)
	})
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report file: %w", err)
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newTSVWriter(w io.Writer) *csv.Writer {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	return tsv
}
