package toll

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/tollctl/internal/observability"
)

// ReportStats emits one highway status line per tick from a single ledger
// snapshot, until ctx is cancelled. It holds the ledger lock only for the
// snapshot read itself.
func (s *Server) ReportStats(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("stats reporter stopped")
			return
		case <-ticker.C:
			snap := s.ledger.Snapshot()
			observability.SetVehiclesOnHighway(snap.OnHighway)
			log.Info().
				Int("current_vehicles", snap.OnHighway).
				Uint64("total_vehicles", snap.Completed).
				Float64("total_fees", snap.TotalFees).
				Msg("highway stats")
		}
	}
}
