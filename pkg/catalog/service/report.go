package service

import (
	"context"
	"time"

	"github.com/latoulicious/setforge/pkg/catalog"
	"github.com/latoulicious/setforge/pkg/catalog/shared"
	"github.com/latoulicious/setforge/pkg/crunch"
	"github.com/latoulicious/setforge/pkg/logging"
)

type ReportService struct {
	service *catalog.Service
	logger  logging.Logger
	sets    *shared.SetMapper
	cards   *shared.CardMapper
}

var _ catalog.ReportServiceInterface = (*ReportService)(nil)

func NewReportService(s *catalog.Service) *ReportService {
	return &ReportService{
		service: s,
		logger:  s.ServiceLogger("reports"),
		sets:    shared.NewSetMapper(),
		cards:   shared.NewCardMapper(),
	}
}

// NumberCrunch recomputes the distribution report of a set from its cards
func (rs *ReportService) NumberCrunch(ctx context.Context, setID uint) (*crunch.Report, error) {
	start := time.Now()

	set, err := rs.service.SetRepo.Get(ctx, setID)
	if err != nil {
		return nil, err
	}

	rows, err := rs.service.CardRepo.ListSummariesBySet(ctx, setID)
	if err != nil {
		rs.logger.Error("Failed to load card summaries", err, map[string]interface{}{"set_id": setID})
		return nil, err
	}

	summaries := make([]crunch.CardSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, rs.cards.ToSummary(row))
	}

	report := crunch.Compute(rs.sets.Target(set), summaries)
	report.SetID = set.ID
	report.SetName = set.Name

	elapsed := time.Since(start)
	rs.service.Metrics.ReportComputed(elapsed)
	rs.logger.Debug("Number crunch computed", map[string]interface{}{
		"set_id":      setID,
		"total_cards": report.ActualDistribution.TotalCards,
		"elapsed_ms":  elapsed.Milliseconds(),
	})
	return &report, nil
}
