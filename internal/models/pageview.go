package models

import "cloud.google.com/go/civil"

// Result-size bounds
const (
	MinResults     = 1
	MaxResults     = 1000
	CleanedRowsCap = 10 // rows kept by the cleaning step regardless of the requested limit
)

// AccessAll is the access type covering desktop, mobile web and mobile app traffic
const AccessAll = "all-access"

// TopResponse is the payload returned by the pageviews "top" endpoint
type TopResponse struct {
	Items []TopItem `json:"items"`
}

// TopItem holds one project/day ranking
type TopItem struct {
	Project  string       `json:"project"`
	Access   string       `json:"access"`
	Year     string       `json:"year"`
	Month    string       `json:"month"`
	Day      string       `json:"day"`
	Articles []TopArticle `json:"articles"`
}

// TopArticle is a raw ranked row as produced by the remote source
type TopArticle struct {
	Article string `json:"article"` // underscore-separated title
	Views   int64  `json:"views"`
	Rank    int    `json:"rank"` // 1-based
}

// Article is a cleaned row: readable title, derived URL and request date
type Article struct {
	Article string `json:"article"`
	Views   int64  `json:"views"`
	Rank    int    `json:"rank"`
	URL     string `json:"url"`
	Date    string `json:"date"` // YYYY-MM-DD the data was requested for
}

// Table is an ordered sequence of article rows.
// A nil Table is the absent-result marker; an empty non-nil Table means the
// source returned no rows.
type Table []Article

// AbsentReason explains why a day has no table
type AbsentReason int

const (
	AbsentNone      AbsentReason = iota
	AbsentNotLoaded              // source has no data for the day (yet)
	AbsentThrottled              // source rejected the request for volume
)

// String returns a short label for the reason
func (r AbsentReason) String() string {
	switch r {
	case AbsentNone:
		return "none"
	case AbsentNotLoaded:
		return "no data or data not loaded yet"
	case AbsentThrottled:
		return "too many requests"
	default:
		return "unknown"
	}
}

// DayResult is the outcome of fetching a single day: either a table or an absent reason
type DayResult struct {
	Date   civil.Date
	Table  Table
	Absent AbsentReason
}

// OK reports whether the day produced a table
func (r DayResult) OK() bool {
	return r.Absent == AbsentNone && r.Table != nil
}

// RowsFromTop converts raw source rows into article rows stamped with the request date
func RowsFromTop(raw []TopArticle, date civil.Date) Table {
	rows := make(Table, 0, len(raw))
	stamp := FormatDate(date)
	for _, a := range raw {
		rows = append(rows, Article{
			Article: a.Article,
			Views:   a.Views,
			Rank:    a.Rank,
			Date:    stamp,
		})
	}
	return rows
}

// ClampLimit restricts a requested result count to [MinResults, MaxResults]
func ClampLimit(n int) int {
	if n < MinResults {
		return MinResults
	}
	if n > MaxResults {
		return MaxResults
	}
	return n
}
