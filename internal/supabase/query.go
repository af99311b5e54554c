package supabase

import (
	"net/url"
	"strconv"
	"strings"
)

// Query builds a PostgREST read. Filters are added in call order; repeated
// Order calls sort by each column in turn.
type Query struct {
	table  string
	params url.Values
	orders []string
}

func newQuery(table string) *Query {
	return &Query{table: table, params: url.Values{}}
}

// Select sets the column list, including embedded relations.
func (q *Query) Select(columns string) *Query {
	q.params.Set("select", columns)
	return q
}

func (q *Query) filter(column, op, value string) *Query {
	q.params.Add(column, op+"."+value)
	return q
}

// Eq filters column = value.
func (q *Query) Eq(column, value string) *Query { return q.filter(column, "eq", value) }

// Neq filters column <> value.
func (q *Query) Neq(column, value string) *Query { return q.filter(column, "neq", value) }

// Gte filters column >= value.
func (q *Query) Gte(column, value string) *Query { return q.filter(column, "gte", value) }

// Lte filters column <= value.
func (q *Query) Lte(column, value string) *Query { return q.filter(column, "lte", value) }

// ILike filters column with a case insensitive pattern. Use * as wildcard.
func (q *Query) ILike(column, pattern string) *Query { return q.filter(column, "ilike", pattern) }

// WebSearch matches a full text column with websearch_to_tsquery in the
// given text search config.
func (q *Query) WebSearch(column, term, config string) *Query {
	return q.filter(column, "wfts("+config+")", term)
}

// Or adds a disjunction of filter expressions, e.g. "category.eq.Scen".
func (q *Query) Or(conditions ...string) *Query {
	q.params.Add("or", "("+strings.Join(conditions, ",")+")")
	return q
}

// Order sorts by column.
func (q *Query) Order(column string, ascending bool) *Query {
	dir := "desc"
	if ascending {
		dir = "asc"
	}
	q.orders = append(q.orders, column+"."+dir)
	return q
}

// Limit caps the number of rows.
func (q *Query) Limit(n int) *Query {
	q.params.Set("limit", strconv.Itoa(n))
	return q
}

// Encode renders the query string.
func (q *Query) Encode() string {
	params := url.Values{}
	for k, v := range q.params {
		params[k] = append([]string(nil), v...)
	}
	if len(q.orders) > 0 {
		params.Set("order", strings.Join(q.orders, ","))
	}
	return params.Encode()
}

// Quote wraps a value for use inside an Or expression.
func Quote(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `"`, `\"`)
	return `"` + v + `"`
}
