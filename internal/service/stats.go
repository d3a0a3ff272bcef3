package service

import (
	"time"

	"github.com/pybites/insights/internal/model"
	"github.com/pybites/insights/internal/repository"
)

const topAuthorLimit = 10

type StatsService struct {
	stats repository.StatsRepository
	now   func() time.Time
}

func NewStatsService(stats repository.StatsRepository) *StatsService {
	return &StatsService{
		stats: stats,
		now:   time.Now,
	}
}

// Overview returns the headline metrics. The "last six months" window
// starts 180 days before the first of the current month.
func (s *StatsService) Overview() (*model.Metrics, error) {
	return s.stats.Overview(s.SixMonthStart())
}

// SixMonthStart is the lower bound of the recent-activity window.
func (s *StatsService) SixMonthStart() time.Time {
	today := s.now().UTC()
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 0, -180)
}

// Trend returns articles-per-month points for the given range, with gap
// months filled with zero counts. A zero bound is open-ended; a fully zero
// range reads the prebuilt monthly aggregates instead of scanning posts.
func (s *StatsService) Trend(from, to time.Time) ([]model.MonthCount, error) {
	var counts []model.MonthCount
	var err error

	if from.IsZero() && to.IsZero() {
		counts, err = s.stats.AllMonthlyCounts()
	} else {
		counts, err = s.stats.MonthlyCounts(from, to)
	}
	if err != nil {
		return nil, err
	}

	return FillMonthGaps(counts), nil
}

func (s *StatsService) TopAuthors() ([]model.AuthorCount, error) {
	return s.stats.TopAuthors(topAuthorLimit)
}

// FilterOptions returns the author and tag lists for the sidebar controls.
func (s *StatsService) FilterOptions() (authors, tags []string, err error) {
	authors, err = s.stats.Authors()
	if err != nil {
		return nil, nil, err
	}
	tags, err = s.stats.Tags()
	if err != nil {
		return nil, nil, err
	}
	return authors, tags, nil
}

// FillMonthGaps inserts zero-count points for months with no publications
// between the first and last month present. Input must be sorted by
// (year, month); output stays sorted.
func FillMonthGaps(counts []model.MonthCount) []model.MonthCount {
	if len(counts) < 2 {
		return counts
	}

	filled := make([]model.MonthCount, 0, len(counts))
	filled = append(filled, counts[0])

	for _, next := range counts[1:] {
		last := filled[len(filled)-1]
		year, month := last.Year, last.Month
		for {
			month++
			if month > 12 {
				month = 1
				year++
			}
			if year == next.Year && month == next.Month {
				break
			}
			if year > next.Year || (year == next.Year && month > next.Month) {
				break
			}
			filled = append(filled, model.MonthCount{Year: year, Month: month})
		}
		filled = append(filled, next)
	}

	return filled
}
