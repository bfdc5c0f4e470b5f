package console

import "strconv"

// Frame is one stack frame of a Traceback.
type Frame struct {
	Filename string
	Line     int
	Name     string
}

// Traceback draws a stack of frames in a panel followed by the exception
// line. Frames whose filename starts with "<" have no source to show, so
// only their location is printed.
type Traceback struct {
	Frames   []Frame
	ExcType  string
	ExcValue string
	// Width caps the rendered width. Zero means the available width.
	Width int

	// ExtraLines, WordWrap, ShowLocals and IndentGuides shape source
	// excerpts and locals, which sourceless frames do not have.
	ExtraLines   int
	WordWrap     bool
	ShowLocals   bool
	IndentGuides bool
}

// Render draws the traceback.
func (tb *Traceback) Render(c *Console, width int) ([]string, error) {
	if tb.Width > 0 {
		width = min(width, tb.Width)
	}

	frames := make(stackLines, 0, len(tb.Frames))
	for i, f := range tb.Frames {
		if i > 0 && (len(f.Filename) == 0 || f.Filename[0] != '<') {
			frames = append(frames, NewText("", Style{}))
		}
		line := NewText("", c.Style("traceback.text"))
		line.Append(f.Filename, c.Style("traceback.filename"))
		line.Append(":", Style{})
		line.Append(strconv.Itoa(f.Line), c.Style("traceback.lineno"))
		line.Append(" in ", Style{})
		line.Append(f.Name, c.Style("traceback.function"))
		frames = append(frames, line)
	}

	panel := NewPanel(frames)
	panel.Title = "[traceback.title]Traceback [dim](most recent call last)"
	panel.BorderStyle = "traceback.border"
	out, err := panel.Render(c, width)
	if err != nil {
		return nil, err
	}

	exc := NewText("", Style{})
	exc.Append(tb.ExcType+": ", c.Style("traceback.exc_type"))
	value := NewText(tb.ExcValue, c.Style("traceback.exc_value"))
	c.highlightRepr(value)
	exc.AppendText(value)
	lines, err := exc.Render(c, width)
	if err != nil {
		return nil, err
	}
	return append(out, lines...), nil
}

// stackLines renders each text on its own wrapped lines.
type stackLines []*Text

func (s stackLines) Render(c *Console, width int) ([]string, error) {
	var out []string
	for _, t := range s {
		lines, err := t.Render(c, width)
		if err != nil {
			return nil, err
		}
		out = append(out, lines...)
	}
	return out, nil
}
