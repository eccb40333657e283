package apitests

import (
	"fmt"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// FieldQuery selects the objects of a top-level array whose string field has a given value. It
// is the equivalent of the JSONPath filter $.array[?(@['field']=='value')].
type FieldQuery struct {
	Array  string
	Field  string
	Equals string
}

// String renders the query as a JSONPath filter expression, for logging.
func (q FieldQuery) String() string {
	return fmt.Sprintf("$.%s[?(@['%s']=='%s')]", q.Array, q.Field, strings.ReplaceAll(q.Equals, "'", `\'`))
}

// Select returns the matching entries in document order. A missing or non-array property
// selects nothing, as do entries that are not objects.
func (q FieldQuery) Select(doc ldvalue.Value) []ldvalue.Value {
	array := doc.GetByKey(q.Array)
	if array.Type() != ldvalue.ArrayType {
		return nil
	}
	var ret []ldvalue.Value
	for i := 0; i < array.Count(); i++ {
		entry := array.GetByIndex(i)
		if entry.Type() != ldvalue.ObjectType {
			continue
		}
		field := entry.GetByKey(q.Field)
		if field.IsString() && field.StringValue() == q.Equals {
			ret = append(ret, entry)
		}
	}
	return ret
}

// Strings returns one string property of each value, skipping values where it is not a string.
func Strings(values []ldvalue.Value, field string) []string {
	var ret []string
	for _, v := range values {
		if f := v.GetByKey(field); f.IsString() {
			ret = append(ret, f.StringValue())
		}
	}
	return ret
}
