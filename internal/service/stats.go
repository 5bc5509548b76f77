package service

import "absence-tracker/internal/repository"

// StatsSummary mirrors the reporting payload: a total plus per-status counts.
// Statuses with no matching records are absent from the breakdown.
type StatsSummary struct {
	TotalReports    int64                    `json:"totalReports"`
	StatusBreakdown []repository.StatusCount `json:"statusBreakdown"`
}

// Summarize assembles the summary from an already-filtered, already-grouped
// count set. Pure; authorization and scoping happen before this point.
func Summarize(counts []repository.StatusCount) *StatsSummary {
	summary := &StatsSummary{StatusBreakdown: make([]repository.StatusCount, 0, len(counts))}
	for _, c := range counts {
		summary.TotalReports += c.Count
		summary.StatusBreakdown = append(summary.StatusBreakdown, c)
	}
	return summary
}
