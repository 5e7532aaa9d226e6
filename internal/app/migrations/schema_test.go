package migrations

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readInitialSchema(t *testing.T) string {
	t.Helper()
	schema, err := os.ReadFile(filepath.Join("..", "..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)
	return string(schema)
}

// Optional request fields map to pointer fields in the models and reach the
// INSERTs as NULL, so their columns must be nullable.
func TestInitialSchemaOptionalColumnsNullable(t *testing.T) {
	schema := readInitialSchema(t)

	optionalColumns := []string{
		"max_sewadars",
		"last_date_to_apply",
		"last_date_to_submit_form",
		"days_participated",
	}

	for _, column := range optionalColumns {
		declaration := regexp.MustCompile(column + `[^,\n]*`).FindString(schema)
		require.NotEmpty(t, declaration, column)
		assert.NotContains(t, declaration, "NOT NULL", column)
	}
}

// A per-program preference row with enabled NULL inherits the global
// preference, so the override column cannot be NOT NULL. The global
// preference keeps its NOT NULL default.
func TestProgramPreferenceEnabledNullable(t *testing.T) {
	schema := readInitialSchema(t)

	assert.Contains(t, schema, "enabled BOOLEAN,")
	assert.Contains(t, schema, "enabled BOOLEAN NOT NULL DEFAULT TRUE,")
}
