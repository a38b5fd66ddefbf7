package query

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type job struct {
	Title    string
	Company  string
	Type     string
	Year     int
	PostedAt time.Time
}

var jobSchema = Schema[job]{
	Text: func(j job) []string { return Fields(j.Title, j.Company) },
	Dimensions: map[string]Dimension[job]{
		"type": func(j job) (string, bool) { return j.Type, j.Type != "" },
		"year": func(j job) (string, bool) { return strconv.Itoa(j.Year), j.Year != 0 },
	},
	Sorts: map[string]Comparator[job]{
		"recent":  ByTimeDesc(func(j job) time.Time { return j.PostedAt }),
		"company": ByText(func(j job) string { return j.Company }),
	},
}

func sampleJobs() []job {
	return []job{
		{Title: "Backend Engineer", Company: "Acme", Type: "full-time"},
		{Title: "Intern", Company: "Acme", Type: "internship"},
	}
}

func TestApply_ExampleScenario(t *testing.T) {
	jobs := sampleJobs()

	got := jobSchema.Apply(jobs, Criteria{Query: "engineer", Filters: map[string]string{"type": "all"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Backend Engineer", got[0].Title)

	got = jobSchema.Apply(jobs, Criteria{Query: "", Filters: map[string]string{"type": "internship"}})
	require.Len(t, got, 1)
	assert.Equal(t, "Intern", got[0].Title)
}

func TestMatches_IsConjunctionOfPredicates(t *testing.T) {
	jobs := append(sampleJobs(), job{Title: "Data Engineer", Company: "Globex", Type: "contract", Year: 2020})
	queries := []string{"", "engineer", "acme", "nothing"}
	types := []string{"", "all", "full-time", "contract", "internship"}
	years := []string{"all", "2020", "2021"}

	for _, j := range jobs {
		for _, q := range queries {
			for _, ty := range types {
				for _, y := range years {
					c := Criteria{Query: q, Filters: map[string]string{"type": ty, "year": y}}

					typeValue, typePresent := jobSchema.Dimensions["type"](j)
					yearValue, yearPresent := jobSchema.Dimensions["year"](j)
					want := MatchesText(jobSchema.Text(j), q) &&
						MatchesDimension(typeValue, typePresent, ty) &&
						MatchesDimension(yearValue, yearPresent, y)

					assert.Equal(t, want, jobSchema.Matches(j, c), "job=%+v criteria=%+v", j, c)
				}
			}
		}
	}
}

func TestApply_IsIdempotentAndDoesNotMutateSource(t *testing.T) {
	now := time.Now()
	jobs := []job{
		{Title: "A", Company: "Zeta", PostedAt: now.Add(-time.Hour)},
		{Title: "B", Company: "alpha", PostedAt: now},
		{Title: "C", Company: "Mid", PostedAt: now.Add(-2 * time.Hour)},
	}
	snapshot := append([]job(nil), jobs...)
	c := Criteria{Sort: "company"}

	first := jobSchema.Apply(jobs, c)
	second := jobSchema.Apply(jobs, c)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, jobs)
	assert.Equal(t, []string{"alpha", "Mid", "Zeta"}, []string{first[0].Company, first[1].Company, first[2].Company})
}

func TestMatchesText_EmptyQueryMatchesEverything(t *testing.T) {
	assert.True(t, MatchesText(nil, ""))
	assert.True(t, MatchesText([]string{""}, "   "))
	assert.True(t, jobSchema.Matches(job{}, Criteria{}))
}

func TestMatchesText_AbsentFieldsNeverMatch(t *testing.T) {
	assert.False(t, MatchesText([]string{"", ""}, "a"))
	assert.True(t, MatchesText([]string{"", "Backend"}, "END"))
}

func TestMatchesDimension_Sentinel(t *testing.T) {
	for _, sentinel := range []string{"", "all", "ALL", " all "} {
		assert.True(t, MatchesDimension("", false, sentinel), sentinel)
		assert.True(t, MatchesDimension("anything", true, sentinel), sentinel)
	}
	assert.False(t, MatchesDimension("", false, "full-time"))
	assert.True(t, MatchesDimension("Full-Time", true, "full-time"))
}

func TestMatches_UnknownDimensionIgnored(t *testing.T) {
	assert.True(t, jobSchema.Matches(sampleJobs()[0], Criteria{Filters: map[string]string{"colour": "red"}}))
}

func TestSort_RecentIsStrictlyDescending(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	jobs := []job{
		{Title: "old", PostedAt: base},
		{Title: "undated"},
		{Title: "new", PostedAt: base.Add(48 * time.Hour)},
		{Title: "mid", PostedAt: base.Add(24 * time.Hour)},
	}

	got := jobSchema.Apply(jobs, Criteria{Sort: "recent"})
	titles := make([]string, len(got))
	for i, j := range got {
		titles[i] = j.Title
	}
	assert.Equal(t, []string{"new", "mid", "old", "undated"}, titles)
}

func TestSort_PopularByCounterDescending(t *testing.T) {
	type story struct{ Likes int }
	schema := Schema[story]{Sorts: map[string]Comparator[story]{
		"popular": ByIntDesc(func(s story) int { return s.Likes }),
	}}

	got := schema.Apply([]story{{5}, {20}, {3}}, Criteria{Sort: "popular"})
	assert.Equal(t, []story{{20}, {5}, {3}}, got)
}

func TestSort_UnknownKeyKeepsSourceOrder(t *testing.T) {
	jobs := sampleJobs()
	assert.Equal(t, jobs, jobSchema.Apply(jobs, Criteria{Sort: "salary"}))
}

func TestCriteria_WithFilterCopies(t *testing.T) {
	base := Criteria{Filters: map[string]string{"type": "contract"}}
	next := base.WithFilter("year", "2020")

	assert.Len(t, base.Filters, 1)
	assert.Equal(t, "2020", next.Filters["year"])
	assert.Equal(t, "contract", next.Filters["type"])
}

func TestParseTimestamp(t *testing.T) {
	assert.Equal(t, 2024, ParseTimestamp("2024-03-01").Year())
	assert.Equal(t, 10, ParseTimestamp("2024-03-01T10:30:00Z").Hour())
	assert.True(t, ParseTimestamp("yesterday").IsZero())
}
