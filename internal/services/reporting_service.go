package services

import (
	"sort"
	"time"

	"worktime/internal/domain"
)

// reportingServiceImpl implements the ReportingService interface
type reportingServiceImpl struct{}

// NewReportingService creates a new ReportingService instance
func NewReportingService() ReportingService {
	return &reportingServiceImpl{}
}

// WorkedMinutes returns the worked minutes of a closed entry, and 0 for an open one
func (s *reportingServiceImpl) WorkedMinutes(entry domain.TimeEntry) float64 {
	return entry.WorkedMinutes()
}

// TotalWorkedHours sums the worked hours of all closed entries
func (s *reportingServiceImpl) TotalWorkedHours(entries []domain.TimeEntry) float64 {
	var minutes float64
	for _, e := range entries {
		minutes += s.WorkedMinutes(e)
	}
	return minutes / 60
}

// WorkedHoursOn sums the worked hours of entries dated on day
func (s *reportingServiceImpl) WorkedHoursOn(entries []domain.TimeEntry, day time.Time) float64 {
	var minutes float64
	for _, e := range entries {
		if domain.SameDay(e.Date, day) {
			minutes += s.WorkedMinutes(e)
		}
	}
	return minutes / 60
}

// GroupByCalendarDay buckets entries by date, newest day first
func (s *reportingServiceImpl) GroupByCalendarDay(entries []domain.TimeEntry) []DayGroup {
	index := make(map[string]int)
	var groups []DayGroup

	for _, e := range entries {
		key := e.DateKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Key: key, Date: domain.StartOfDay(e.Date)})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].Date.After(groups[b].Date)
	})
	return groups
}

// SortForDisplay returns a copy of entries ordered by date, newest first
func (s *reportingServiceImpl) SortForDisplay(entries []domain.TimeEntry) []domain.TimeEntry {
	out := make([]domain.TimeEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(a, b int) bool {
		return out[a].Date.After(out[b].Date)
	})
	return out
}

// DaySummaries groups entries by day and totals each group
func (s *reportingServiceImpl) DaySummaries(entries []domain.TimeEntry) []DaySummary {
	groups := s.GroupByCalendarDay(entries)
	summaries := make([]DaySummary, len(groups))
	for i, g := range groups {
		summaries[i] = DaySummary{DayGroup: g, WorkedHours: s.TotalWorkedHours(g.Entries)}
	}
	return summaries
}
