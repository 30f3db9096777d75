package records

import (
	"sort"
	"strings"
)

// Query carries the list-transform parameters taken from the request.
type Query struct {
	Search     string
	Department string
	SortKey    string
	SortOrder  string // "asc" (default) or "desc"
}

// numericKeys are compared as numbers; every other sort key compares
// case-insensitively as a string.
var numericKeys = map[string]struct{}{
	"createdAt": {},
	"updatedAt": {},
	"sizeBytes": {},
}

// Transform applies search, department filter and sort to a record list, in
// that order. The input slice is never mutated; a blank search and a blank
// department filter are no-ops, and sorting is stable so equal keys keep
// their incoming relative order.
func Transform(in []Record, q Query) []Record {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	department := q.Department

	out := make([]Record, 0, len(in))
	for _, rec := range in {
		if search != "" && !matchesSearch(rec, search) {
			continue
		}
		if department != "" && rec.Department != department {
			continue
		}
		out = append(out, rec)
	}

	if key := q.SortKey; key != "" {
		asc := comparator(key)
		less := asc
		// Descending mirrors the comparator rather than reversing the
		// sorted output, so ties keep their original order.
		if strings.EqualFold(q.SortOrder, "desc") {
			less = func(a, b Record) bool { return asc(b, a) }
		}
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}

	return out
}

func matchesSearch(rec Record, needle string) bool {
	for _, hay := range []string{
		rec.File.Name,
		rec.Subject,
		rec.UploaderEmail,
		rec.Department,
		rec.InwardNumber,
	} {
		if strings.Contains(strings.ToLower(hay), needle) {
			return true
		}
	}
	return false
}

func comparator(key string) func(a, b Record) bool {
	if _, ok := numericKeys[key]; ok {
		return func(a, b Record) bool {
			return numericValue(a, key) < numericValue(b, key)
		}
	}
	return func(a, b Record) bool {
		return strings.ToLower(stringValue(a, key)) < strings.ToLower(stringValue(b, key))
	}
}

// numericValue extracts the sortable number for a record; absent values
// sort as zero.
func numericValue(rec Record, key string) int64 {
	switch key {
	case "createdAt":
		if rec.CreatedAt.IsZero() {
			return 0
		}
		return rec.CreatedAt.UnixMilli()
	case "updatedAt":
		if rec.UpdatedAt.IsZero() {
			return 0
		}
		return rec.UpdatedAt.UnixMilli()
	case "sizeBytes":
		return rec.File.SizeBytes
	}
	return 0
}

// stringValue extracts the sortable string for a record; unknown keys and
// absent values sort as the empty string.
func stringValue(rec Record, key string) string {
	switch key {
	case "department":
		return rec.Department
	case "subject":
		return rec.Subject
	case "receivedFrom":
		return rec.ReceivedFrom
	case "allocatedTo":
		return rec.AllocatedTo
	case "status":
		return rec.Status
	case "inwardNumber":
		return rec.InwardNumber
	case "inwardDate":
		return rec.InwardDate
	case "receivingDate":
		return rec.ReceivingDate
	case "fileName":
		return rec.File.Name
	case "uploaderEmail":
		return rec.UploaderEmail
	}
	return ""
}
