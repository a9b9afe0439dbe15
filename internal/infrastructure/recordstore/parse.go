package recordstore

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind classifies a statement by its leading keyword.
type Kind int

const (
	KindOther Kind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "other"
	}
}

// Mutating reports whether Run may be used with this kind.
func (k Kind) Mutating() bool {
	return k == KindInsert || k == KindUpdate || k == KindDelete
}

var (
	tableClause    = regexp.MustCompile("(?i)\\b(?:INSERT\\s+INTO|DELETE\\s+FROM|UPDATE|FROM)\\s+[\"`]?([A-Za-z_][A-Za-z0-9_]*)[\"`]?")
	dollarParam    = regexp.MustCompile(`\$(\d+)`)
	returningWords = regexp.MustCompile(`(?i)\bRETURNING\b`)
)

// stripLiterals blanks out single-quoted string contents so keywords and
// placeholders inside literals are not mistaken for SQL.
func stripLiterals(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c == '\'' {
			if inQuote && i+1 < len(query) && query[i+1] == '\'' {
				b.WriteString("  ")
				i++
				continue
			}
			inQuote = !inQuote
			b.WriteByte(c)
			continue
		}
		if inQuote {
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func classify(query string) Kind {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return KindOther
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT":
		return KindSelect
	case "INSERT":
		return KindInsert
	case "UPDATE":
		return KindUpdate
	case "DELETE":
		return KindDelete
	default:
		return KindOther
	}
}

// targetTable returns the first table named by a FROM, INSERT INTO, UPDATE or
// DELETE FROM clause, lower-cased.
func targetTable(query string) string {
	m := tableClause.FindStringSubmatch(query)
	if m == nil {
		return ""
	}
	return strings.ToLower(m[1])
}

// countPlaceholders counts positional parameters, accepting both `?` and
// numbered `$n` styles.
func countPlaceholders(query string) int {
	n := strings.Count(query, "?")
	highest := 0
	for _, m := range dollarParam.FindAllStringSubmatch(query, -1) {
		if v, err := strconv.Atoi(m[1]); err == nil && v > highest {
			highest = v
		}
	}
	return n + highest
}

func hasReturning(query string) bool {
	return returningWords.MatchString(query)
}
