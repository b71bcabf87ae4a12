package index

import (
	"strings"
	"time"
)

// DefaultPageSize is used when QueryOptions does not specify a page size.
const DefaultPageSize = 20

// QueryOptions are the filters applied to a snapshot. All filters are
// optional and conjunctive.
type QueryOptions struct {
	// Search is a whitespace-separated list of terms. A record matches if
	// any single term is a case-insensitive substring of its name or folder.
	Search string
	// Extension filters to an exact type. Empty or "all" disables the filter.
	Extension string
	// DateFrom and DateTo are inclusive calendar-date bounds on ModifiedAt.
	// Zero values leave the corresponding bound open.
	DateFrom time.Time
	DateTo   time.Time
	// Page is the 1-based page number. Out-of-range values are clamped.
	Page int
	// PageSize is the number of records per page.
	PageSize int
}

// QueryResult is one page of matching records plus the pre-pagination count.
type QueryResult struct {
	Items      []*FileRecord `json:"items"`
	TotalItems int           `json:"totalItems"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
	Version    uint64        `json:"version"`
	BuiltAt    time.Time     `json:"builtAt"`
}

// Query filters, searches, and paginates a snapshot. It is a pure function
// of its inputs: the snapshot is immutable, so Query is safe to call from
// any number of goroutines concurrently with reconciliation.
func Query(snap *Snapshot, opts QueryOptions) QueryResult {
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	terms := strings.Fields(strings.ToLower(opts.Search))
	extFilter := strings.ToLower(opts.Extension)
	if extFilter == "all" {
		extFilter = ""
	}

	var matched []*FileRecord
	for _, rec := range snap.Records {
		if extFilter != "" && string(rec.Extension) != extFilter {
			continue
		}
		if !matchesDateRange(rec.ModifiedAt, opts.DateFrom, opts.DateTo) {
			continue
		}
		if len(terms) > 0 && !matchesAnyTerm(rec, terms) {
			continue
		}
		matched = append(matched, rec)
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}

	page := opts.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := matched[start:end]
	if items == nil {
		items = []*FileRecord{}
	}

	return QueryResult{
		Items:      items,
		TotalItems: total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Version:    snap.Version,
		BuiltAt:    snap.BuiltAt,
	}
}

// matchesAnyTerm reports whether any term is a substring of the record's
// lower-cased name or folder. Matching a single term suffices.
func matchesAnyTerm(rec *FileRecord, terms []string) bool {
	name := strings.ToLower(rec.Name)
	folder := strings.ToLower(rec.Folder)
	for _, term := range terms {
		if strings.Contains(name, term) || strings.Contains(folder, term) {
			return true
		}
	}
	return false
}

// matchesDateRange compares the calendar date of mod against inclusive
// bounds. Comparison is by (year, month, day) tuple so time-of-day and
// sub-day timezone offsets do not affect the result.
func matchesDateRange(mod, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	day := dateOrdinal(mod)
	if !from.IsZero() && day < dateOrdinal(from) {
		return false
	}
	if !to.IsZero() && day > dateOrdinal(to) {
		return false
	}
	return true
}

// dateOrdinal flattens a time's calendar date to a comparable integer.
func dateOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
