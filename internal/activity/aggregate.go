package activity

import "sort"

// Aggregate rolls the full entry log up into one AppSummary per application,
// sorted descending by total duration. The sort is stable, so applications
// with equal totals keep their encounter order. All entries participate,
// not just relevant ones; downstream consumers decide what to surface.
func Aggregate(entries []Entry) []AppSummary {
	index := make(map[string]int)
	summaries := make([]AppSummary, 0)

	for _, e := range entries {
		i, ok := index[e.App]
		if !ok {
			i = len(summaries)
			index[e.App] = i
			summaries = append(summaries, AppSummary{App: e.App})
		}
		summaries[i].TotalDurationSeconds += e.DurationSeconds
		if e.File != "" {
			summaries[i].Files = appendDistinct(summaries[i].Files, e.File)
		}
		if e.Title != "" {
			summaries[i].Titles = appendDistinct(summaries[i].Titles, e.Title)
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalDurationSeconds > summaries[j].TotalDurationSeconds
	})
	return summaries
}

// appendDistinct appends v unless already present, preserving first-seen order.
func appendDistinct(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
