package metrics

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordQuery(t *testing.T) {
	before := testutil.ToFloat64(QueryTruncated.WithLabelValues("test_search"))
	RecordQuery("test_search", 5*time.Millisecond, 1000, true, nil)
	assert.Equal(t, before+1, testutil.ToFloat64(QueryTruncated.WithLabelValues("test_search")))

	errBefore := testutil.ToFloat64(QueryErrors.WithLabelValues("test_search", ErrorTypeMissingObject))
	RecordQuery("test_search", time.Millisecond, 0, false, errors.New("no such table: listing"))
	assert.Equal(t, errBefore+1, testutil.ToFloat64(QueryErrors.WithLabelValues("test_search", ErrorTypeMissingObject)))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline", fmt.Errorf("query: %w", context.DeadlineExceeded), ErrorTypeTimeout},
		{"exhausted", errors.New("resource exhausted: pool busy"), ErrorTypeTimeout},
		{"mysql missing table", &mysql.MySQLError{Number: 1146, Message: "Table 'x.brand_alias' doesn't exist"}, ErrorTypeMissingObject},
		{"mysql unknown database", &mysql.MySQLError{Number: 1049, Message: "Unknown database 'x'"}, ErrorTypeOther},
		{"other", errors.New("syntax error"), ErrorTypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestRecordLookupCache(t *testing.T) {
	hits := testutil.ToFloat64(LookupCacheHits.WithLabelValues("test_makes"))
	misses := testutil.ToFloat64(LookupCacheMisses.WithLabelValues("test_makes"))

	RecordLookupCache("test_makes", true)
	RecordLookupCache("test_makes", false)
	RecordLookupCache("test_makes", false)

	assert.Equal(t, hits+1, testutil.ToFloat64(LookupCacheHits.WithLabelValues("test_makes")))
	assert.Equal(t, misses+2, testutil.ToFloat64(LookupCacheMisses.WithLabelValues("test_makes")))
}
