package filter

import (
	"context"
	"log/slog"

	"astrocopy/internal/astro"
	"astrocopy/internal/config"
	"astrocopy/internal/logging"
)

// Stage groups valid records by observation, date, and capture and filters
// each capture group independently.
type Stage struct {
	policy  config.IgnorePolicy
	logger  *slog.Logger
	perFile *slog.Logger
	stats   Stats
}

// NewStage builds the grouping and filtering stage.
func NewStage(policy config.IgnorePolicy, logger, perFile *slog.Logger) *Stage {
	if logger == nil {
		logger = logging.NewNop()
	}
	if perFile == nil {
		perFile = logger
	}
	return &Stage{policy: policy, logger: logger, perFile: perFile}
}

// Name implements stage.Handler.
func (s *Stage) Name() string { return "filter" }

// Stats returns the totals of the last Process call.
func (s *Stage) Stats() Stats { return s.stats }

// Process filters files group by group. The full collection is returned;
// dropped records stay in it with Valid cleared.
func (s *Stage) Process(ctx context.Context, files astro.Files) (astro.Files, error) {
	s.stats = Stats{}
	s.logger.Info("filtering files", logging.String("policy", s.policy.String()))

	for _, og := range astro.Group(files) {
		s.perFile.Info("observation", logging.String("observation", og.Name))
		for _, dg := range og.Dates {
			s.perFile.Info("observation date", logging.String("observation", og.Name), logging.String("date", dg.Date.Format(astro.DateLayout)))
			for _, cg := range dg.Captures {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				groupStats, err := Filter(s.policy, cg.Files)
				if err != nil {
					return nil, err
				}
				s.perFile.Info("capture filtered",
					logging.String("observation", og.Name),
					logging.String("capture", cg.Name),
					logging.Int("files", groupStats.Total),
					logging.Int("accepted", groupStats.Accepted),
					logging.Int("rejected", groupStats.Rejected),
					logging.Int("filtered", groupStats.Filtered),
				)
				s.stats.Add(groupStats)
			}
		}
	}

	s.logger.Info("filter complete",
		logging.Int("files", s.stats.Total),
		logging.Int("accepted", s.stats.Accepted),
		logging.Int("rejected", s.stats.Rejected),
		logging.Int("filtered", s.stats.Filtered),
		logging.Int("remaining", len(files.Valid())),
	)
	return files, nil
}
