package harness

import (
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/termfixture/internal/ir"
)

// GoldenDir is where golden captures live, relative to the test's package.
const GoldenDir = "testdata/golden"

// GoldenBytes is the golden file form of a capture: its canonical expected
// record followed by a newline.
func GoldenBytes(c Capture) ([]byte, error) {
	data, err := ir.MarshalCanonical(c.IR())
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// GoldenName maps a scenario id to a golden file name. Slashes become
// double underscores so every golden sits directly in the fixture dir.
func GoldenName(id string) string {
	return strings.ReplaceAll(id, "/", "__")
}

// AssertGolden compares a capture against testdata/golden/<id>.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func AssertGolden(t *testing.T, id string, c Capture) {
	t.Helper()
	assertGoldenIn(t, GoldenDir, id, c)
}

func assertGoldenIn(t *testing.T, dir, id string, c Capture) {
	t.Helper()

	data, err := GoldenBytes(c)
	if err != nil {
		t.Fatalf("encode capture %s: %v", id, err)
	}
	g := goldie.New(t,
		goldie.WithFixtureDir(dir),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, GoldenName(id), data)
}
