package harness

import (
	"fmt"

	"github.com/roach88/termfixture/internal/console"
	"github.com/roach88/termfixture/internal/scenario"
)

// Capture is the raw output of one rendering pass.
type Capture struct {
	Plain string
	ANSI  string
}

// Normalized returns the capture with Normalize applied to both forms.
func (c Capture) Normalized() Capture {
	return Capture{Plain: Normalize(c.Plain), ANSI: Normalize(c.ANSI)}
}

// Render prints v into a fresh recording console built from x and exports
// both captures from the same session.
//
// protocol_measure scenarios print "<minimum>:<maximum>" as measured by the
// console instead of v itself.
//
// Console panics are recovered and reported as errors; the console is
// treated as opaque.
func Render(x *ExecutionContext, kind scenario.Kind, v any) (out Capture, err error) {
	opts, err := x.ConsoleOptions()
	if err != nil {
		return Capture{}, err
	}

	defer func() {
		if r := recover(); r != nil {
			out = Capture{}
			err = fmt.Errorf("console panic: %v", r)
		}
	}()

	c := console.New(opts)
	if kind == scenario.KindProtocolMeasure {
		m := c.Measure(v)
		v = fmt.Sprintf("%d:%d", m.Minimum, m.Maximum)
	}
	if err := c.Print(v); err != nil {
		return Capture{}, err
	}

	out = Capture{Plain: c.ExportText(), ANSI: c.ExportANSI()}
	c.Clear()
	if n := c.Buffered(); n != 0 {
		return Capture{}, fmt.Errorf("record buffer holds %d segments after clear", n)
	}
	return out, nil
}
