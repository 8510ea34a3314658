package repository

import (
	"database/sql"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// aliasColumns prefixes every column in a comma-separated column list with
// the given table alias, for join queries.
func aliasColumns(columns, alias string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// parseNullableTime parses a sql.NullString into a *time.Time using the
// given layout. Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite
// storage; nil maps to SQL NULL.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableString converts a *string to a storage value; nil maps to NULL.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// deriveArrival computes an entry's effective arrival time: the upstream
// source entry's end plus the configured rest hours when a source exists,
// the stored arrival otherwise.
func deriveArrival(stored time.Time, sourceEnd sql.NullString, restHours sql.NullFloat64) time.Time {
	end := parseNullableTime(sourceEnd, time.RFC3339)
	if end == nil {
		return stored
	}
	hours := 0.0
	if restHours.Valid {
		hours = restHours.Float64
	}
	if hours <= 0 {
		return *end
	}
	return end.Add(time.Duration(hours * float64(time.Hour)))
}
