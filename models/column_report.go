package models

import (
	"fmt"
	"io"
	"sort"

	"gorm.io/gorm"
)

/*
Column Mismatch Report

Lists database columns that no field of the corresponding model maps to, which usually means
a column was added by hand or a field was renamed without a migration.

Run with GENERATE_COLUMN_REPORT=true. Example output:

=== COLUMN MISMATCH REPORT ===

--- Table: social_projects ---
Found 1 columns not accounted for in model:
  - legacy_icon

--- Table: users ---
All columns are accounted for in the model.

=== SUMMARY ===
Total mismatched columns across all tables: 1
*/

// TableMismatch is the report entry for one table.
type TableMismatch struct {
	Table   string
	Missing bool
	Columns []string
}

// ColumnMismatches compares each model's table against its struct fields.
func ColumnMismatches(db *gorm.DB) ([]TableMismatch, error) {
	tables := TableNames()
	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var report []TableMismatch
	for _, table := range names {
		model := tables[table]
		entry := TableMismatch{Table: table}

		if !db.Migrator().HasTable(model) {
			entry.Missing = true
			report = append(report, entry)
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
		}

		modelFields, err := modelColumns(db, model)
		if err != nil {
			return nil, err
		}

		for _, ct := range columnTypes {
			if !modelFields[ct.Name()] {
				entry.Columns = append(entry.Columns, ct.Name())
			}
		}
		report = append(report, entry)
	}
	return report, nil
}

// modelColumns returns the column names gorm maps the model's fields to.
func modelColumns(db *gorm.DB, model any) (map[string]bool, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return nil, fmt.Errorf("error parsing model for table: %w", err)
	}
	fields := make(map[string]bool, len(stmt.Schema.DBNames))
	for _, name := range stmt.Schema.DBNames {
		fields[name] = true
	}
	return fields, nil
}

// WriteColumnMismatchReport prints the report and returns the number of unaccounted columns.
func WriteColumnMismatchReport(w io.Writer, db *gorm.DB) (int, error) {
	report, err := ColumnMismatches(db)
	if err != nil {
		return 0, err
	}

	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")
	total := 0
	for _, entry := range report {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", entry.Table)
		switch {
		case entry.Missing:
			fmt.Fprintln(w, "Table does not exist yet (will be created during migration)")
		case len(entry.Columns) > 0:
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(entry.Columns))
			for _, col := range entry.Columns {
				fmt.Fprintf(w, "  - %s\n", col)
			}
			total += len(entry.Columns)
		default:
			fmt.Fprintln(w, "All columns are accounted for in the model.")
		}
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
	return total, nil
}
