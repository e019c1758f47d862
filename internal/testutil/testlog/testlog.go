// Package testlog routes the global logger through the test runner so log
// output stays attached to the test that produced it.
package testlog

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Start(t *testing.T) {
	t.Helper()
	log.Logger = zerolog.New(zerolog.NewTestWriter(t)).With().Timestamp().Logger()
}
