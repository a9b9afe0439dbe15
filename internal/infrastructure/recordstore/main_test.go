package recordstore

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
)

// Statement tracing logs at debug; keep verbose test output readable.
func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}
