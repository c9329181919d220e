package ledgercore

import "strings"

// SearchOp is one comparison operator the query grammar supports.
type SearchOp string

const (
	OpEq SearchOp = "="
	OpNe SearchOp = "!="
	OpIn SearchOp = "in"
)

// SearchClause is one parsed "field op value" term.
type SearchClause struct {
	Field string
	Op    SearchOp
	// Value holds the right-hand side for Eq/Ne. Values holds the
	// "|"-separated set for In.
	Value  string
	Values []string
}

// ParseSearchQuery parses the repository search mini-language: a
// comma-separated list of "field = value", "field != value" or
// "field in (v1|v2|...)" clauses. Field names are not validated, here or
// by the repositories: a clause naming a field that a record does not
// carry makes MatchClauses report no match for that record.
//
// Grammar:
//
//	query      := clause ("," clause)*
//	clause     := field op value
//	op         := "!=" | "=" | "in"
//	value      := any run of characters up to the next comma outside a
//	              "(...)" group, trimmed of
//	              surrounding whitespace; "in" values are additionally
//	              split on "|" after stripping an enclosing "(" ")" pair.
func ParseSearchQuery(query string) ([]SearchClause, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	rawClauses := splitTopLevel(query, ',')
	clauses := make([]SearchClause, 0, len(rawClauses))
	for _, raw := range rawClauses {
		clause, err := parseClause(raw)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, clause)
	}
	return clauses, nil
}

func parseClause(raw string) (SearchClause, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return SearchClause{}, NewValidationErrorf("empty search clause")
	}

	if idx := strings.Index(raw, "!="); idx >= 0 {
		field := strings.TrimSpace(raw[:idx])
		value := strings.TrimSpace(raw[idx+2:])
		if field == "" || value == "" {
			return SearchClause{}, NewValidationErrorf("malformed clause %q", raw)
		}
		return SearchClause{Field: field, Op: OpNe, Value: value}, nil
	}

	if idx := strings.Index(raw, "="); idx >= 0 {
		field := strings.TrimSpace(raw[:idx])
		value := strings.TrimSpace(raw[idx+1:])
		if field == "" || value == "" {
			return SearchClause{}, NewValidationErrorf("malformed clause %q", raw)
		}
		return SearchClause{Field: field, Op: OpEq, Value: value}, nil
	}

	fields := strings.Fields(raw)
	if len(fields) >= 3 && fields[1] == "in" {
		field := fields[0]
		rest := strings.TrimSpace(strings.Join(fields[2:], " "))
		rest = strings.TrimPrefix(rest, "(")
		rest = strings.TrimSuffix(rest, ")")
		parts := strings.Split(rest, "|")
		values := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				values = append(values, p)
			}
		}
		if len(values) == 0 {
			return SearchClause{}, NewValidationErrorf("empty 'in' set in clause %q", raw)
		}
		return SearchClause{Field: field, Op: OpIn, Values: values}, nil
	}

	return SearchClause{}, NewValidationErrorf("unrecognized search clause %q", raw)
}

// MatchClauses reports whether fields (a flat string-keyed view of a
// record) satisfies every clause. Repositories build this view once per
// record and reuse ParseSearchQuery + MatchClauses so every backend
// implements the same query semantics.
func MatchClauses(fields map[string]string, clauses []SearchClause) bool {
	for _, c := range clauses {
		v, ok := fields[c.Field]
		if !ok {
			return false
		}
		switch c.Op {
		case OpEq:
			if v != c.Value {
				return false
			}
		case OpNe:
			if v == c.Value {
				return false
			}
		case OpIn:
			found := false
			for _, want := range c.Values {
				if v == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// splitTopLevel splits s on sep, ignoring occurrences of sep inside a
// "(...)" group (needed so "status in (a|b), code = x" splits into two
// clauses rather than three).
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}
