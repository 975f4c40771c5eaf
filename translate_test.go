package libdplyr

import (
	"os"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"

	"github.com/mrchypark/libdplyr/dialect"
	"github.com/mrchypark/libdplyr/trace"
)

type collectingSink struct {
	records []trace.Record
}

func (c *collectingSink) Emit(r trace.Record) { c.records = append(c.records, r) }

// scenario mirrors one entry of testdata/scenarios.yaml, decoded with
// goccy/go-yaml.
type scenario struct {
	Name    string `yaml:"name"`
	Source  string `yaml:"source"`
	Dialect string `yaml:"dialect"`
	Want    string `yaml:"want"`
}

var dialectByName = map[string]dialect.Kind{
	"postgresql": dialect.PostgreSQL,
	"mysql":      dialect.MySQL,
	"sqlite":     dialect.SQLite,
	"duckdb":     dialect.DuckDB,
}

func normalizeWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func TestTranslateScenarios(t *testing.T) {
	buf, err := os.ReadFile("testdata/scenarios.yaml")
	assert.NoError(t, err)

	var scenarios []scenario
	assert.NoError(t, yaml.Unmarshal(buf, &scenarios))
	assert.NotEmpty(t, scenarios)

	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			d, ok := dialectByName[sc.Dialect]
			assert.True(t, ok, "unknown dialect %q", sc.Dialect)

			got, err := Translate(sc.Source, d, Options{})
			assert.NoError(t, err)
			assert.Equal(t, normalizeWhitespace(sc.Want), normalizeWhitespace(got))
		})
	}
}

func TestTranslateInvalidInputReturnsParseStageError(t *testing.T) {
	// S6: `select(name` with an unclosed paren.
	_, err := Translate("select(name", dialect.PostgreSQL, Options{})
	assert.Error(t, err)
	te := err.(*TranslateError)
	assert.Equal(t, "parse", te.Stage)
}

func TestValidateAcceptsWellFormedPipeline(t *testing.T) {
	assert.NoError(t, Validate("select(name, age)", Options{}))
}

func TestValidateRejectsMalformedPipeline(t *testing.T) {
	err := Validate("select(name", Options{})
	assert.Error(t, err)
}

func TestTranslateRejectsOversizedInput(t *testing.T) {
	huge := "select(" + strings.Repeat("a", 100) + ")"
	_, err := Translate(huge, dialect.PostgreSQL, Options{MaxInputBytes: 10})
	assert.Error(t, err)
	var tooLarge *InputTooLargeError
	assert.ErrorAs(t, err, &tooLarge)
}

func TestTranslateDialectIndependentParsing(t *testing.T) {
	// Dialect orthogonality (spec.md §8): only emission differs.
	for _, d := range []dialect.Kind{dialect.PostgreSQL, dialect.MySQL, dialect.SQLite, dialect.DuckDB} {
		_, err := Translate("select(name)", d, Options{})
		assert.NoError(t, err)
	}
}

func TestTranslateDebugTraceWithoutSinkIsNoop(t *testing.T) {
	// A true DebugTrace with no Trace sink must not panic or error — the
	// core owns no sinks (spec.md §5/§6).
	_, err := Translate("select(name)", dialect.PostgreSQL, Options{DebugTrace: true})
	assert.NoError(t, err)
}

func TestTranslateDebugTraceWithSinkCollectsRecordsSharingOneCallID(t *testing.T) {
	sink := &collectingSink{}
	_, err := Translate("select(name)", dialect.PostgreSQL, Options{DebugTrace: true, Trace: sink})
	assert.NoError(t, err)
	assert.NotEmpty(t, sink.records)
	for _, r := range sink.records {
		assert.Equal(t, sink.records[0].CallID, r.CallID)
		assert.NotEmpty(t, r.CallID)
	}
}
