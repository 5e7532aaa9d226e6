package repositories

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

// sqlGluedKeyword matches a keyword with a non-space character directly in
// front of it, e.g. "drop_approved_byFROM".
var sqlGluedKeyword = regexp.MustCompile(`\S(?:SELECT|FROM|WHERE|JOIN|ORDER|RETURNING)\b`)

// The column constants are concatenated directly against SELECT, FROM and
// RETURNING, so they must start and end with whitespace or the rendered SQL
// glues the last column onto the next keyword.
func TestColumnConstantsWhitespaceWrapped(t *testing.T) {
	constants := map[string]string{
		"sewadarColumns":        sewadarColumns,
		"programColumns":        programColumns,
		"applicationColumns":    applicationColumns,
		"workflowColumns":       workflowColumns,
		"formSubmissionColumns": formSubmissionColumns,
	}

	for name, columns := range constants {
		assert.Regexp(t, `^\s`, columns, name)
		assert.Regexp(t, `\s$`, columns, name)
	}
}

func TestAssembledQueriesSeparateKeywords(t *testing.T) {
	// Assembled the same way the lookup queries assemble them, including the
	// tightest form where the next clause follows the constant directly.
	queries := map[string]string{
		"sewadar by zonal ID": `SELECT` + sewadarColumns + `FROM sewadars WHERE zonal_id = $1`,
		"application by ID":   `SELECT` + applicationColumns + `FROM program_applications pa WHERE pa.id = $1`,
		"workflow by program": `SELECT` + workflowColumns + `FROM program_workflows w WHERE w.program_id = $1`,
		"submission by ID":    `SELECT` + formSubmissionColumns + `FROM sewadar_form_submissions f WHERE f.id = $1`,
		"advance returning":   `UPDATE program_workflows w SET current_node = current_node + 1 RETURNING` + workflowColumns,
	}

	for name, query := range queries {
		assert.NotRegexp(t, sqlGluedKeyword, query, name)
	}
}
