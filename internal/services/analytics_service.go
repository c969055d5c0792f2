package services

import (
	"time"

	"campusmart/internal/repos"
)

const analyticsWindow = 30 * 24 * time.Hour

type AnalyticsService struct {
	Logs  *repos.SearchLogRepo
	Stats *repos.AnalyticsRepo
}

func NewAnalyticsService(logs *repos.SearchLogRepo, stats *repos.AnalyticsRepo) *AnalyticsService {
	return &AnalyticsService{Logs: logs, Stats: stats}
}

type Snapshot struct {
	TopSearches      []repos.TermCount     `json:"top_searches"`
	CategoryListings []repos.CategoryCount `json:"category_listings"`
	CategoryViews    []repos.CategoryViews `json:"category_views"`
}

// ComputeSnapshot aggregates a college's marketplace activity at the given
// instant. Search terms and listing counts cover the trailing 30 days
// (entries older than exactly 30 days before now are excluded); view totals
// are lifetime counters.
func (s *AnalyticsService) ComputeSnapshot(collegeID int64, now time.Time) (Snapshot, error) {
	cutoff := now.UTC().Add(-analyticsWindow).Format("2006-01-02 15:04:05")

	top, err := s.Logs.TopTerms(collegeID, cutoff, 5)
	if err != nil {
		return Snapshot{}, err
	}
	listings, err := s.Stats.CategoryListingCounts(collegeID, cutoff)
	if err != nil {
		return Snapshot{}, err
	}
	views, err := s.Stats.CategoryViewTotals(collegeID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{TopSearches: top, CategoryListings: listings, CategoryViews: views}, nil
}
