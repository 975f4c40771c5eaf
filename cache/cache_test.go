package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mrchypark/libdplyr"
	"github.com/mrchypark/libdplyr/dialect"
	"github.com/mrchypark/libdplyr/trace"
)

func TestCacheReturnsSameResultOnHit(t *testing.T) {
	c := New(nil)
	sql1, err := c.Translate("select(name)", dialect.PostgreSQL, libdplyr.Options{})
	assert.NoError(t, err)
	sql2, err := c.Translate("select(name)", dialect.PostgreSQL, libdplyr.Options{})
	assert.NoError(t, err)
	assert.Equal(t, sql1, sql2)
}

func TestCacheKeyIncludesDialectAndPreserveComments(t *testing.T) {
	c := New(nil)
	pgSQL, err := c.Translate("select(name)", dialect.PostgreSQL, libdplyr.Options{})
	assert.NoError(t, err)
	mysqlSQL, err := c.Translate("select(name)", dialect.MySQL, libdplyr.Options{})
	assert.NoError(t, err)
	assert.NotEqual(t, pgSQL, mysqlSQL)

	plain, err := c.Translate("# note\nselect(name)", dialect.PostgreSQL, libdplyr.Options{})
	assert.NoError(t, err)
	withComments, err := c.Translate("# note\nselect(name)", dialect.PostgreSQL, libdplyr.Options{PreserveComments: true})
	assert.NoError(t, err)
	assert.NotEqual(t, plain, withComments)
}

func TestCacheDoesNotCacheErrors(t *testing.T) {
	c := New(nil)
	_, err1 := c.Translate("select(name", dialect.PostgreSQL, libdplyr.Options{})
	assert.Error(t, err1)
	_, err2 := c.Translate("select(name", dialect.PostgreSQL, libdplyr.Options{})
	assert.Error(t, err2)
}

type sink struct{ hits int }

func (s *sink) Emit(r trace.Record) {
	if r.Stage == "cache" {
		s.hits++
	}
}

func TestCacheHitEmitsTraceRecord(t *testing.T) {
	c := New(nil)
	s := &sink{}
	opts := libdplyr.Options{DebugTrace: true, Trace: s}
	_, err := c.Translate("select(name)", dialect.PostgreSQL, opts)
	assert.NoError(t, err)
	_, err = c.Translate("select(name)", dialect.PostgreSQL, opts)
	assert.NoError(t, err)
	assert.Equal(t, 1, s.hits)
}
