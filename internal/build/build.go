package build

import (
	"fmt"
	"slices"

	"github.com/roach88/termfixture/internal/console"
	"github.com/roach88/termfixture/internal/ir"
	"github.com/roach88/termfixture/internal/scenario"
)

// DefaultRuleCharacter is the light horizontal line.
const DefaultRuleCharacter = "\u2500"

// TracebackFilename is the filename given to every synthetic frame that
// does not name one.
const TracebackFilename = "<traceback_fixture>"

// Build constructs the printable value for a scenario. The result is a
// markup string, a console renderable, a *console.Control, a *CastHook or a
// *MeasureHook.
func Build(kind scenario.Kind, input ir.IRObject) (any, error) {
	f := newFields(kind, input)
	switch kind {
	case scenario.KindText:
		return f.requiredString("markup")
	case scenario.KindTextFromANSI:
		return buildFromANSI(f)
	case scenario.KindProtocolCast:
		markup, err := f.requiredString("markup")
		if err != nil {
			return nil, err
		}
		return &CastHook{Markup: markup}, nil
	case scenario.KindProtocolMeasure:
		return buildMeasure(f)
	case scenario.KindControl:
		return buildControl(f)
	case scenario.KindRule:
		return buildRule(f)
	case scenario.KindPanel:
		return buildPanel(f)
	case scenario.KindTable:
		return buildTable(f)
	case scenario.KindTree:
		return buildTree(f)
	case scenario.KindProgress:
		return buildProgress(f)
	case scenario.KindColumns:
		return buildColumns(f)
	case scenario.KindPadding:
		return buildPadding(f)
	case scenario.KindConstrain:
		return buildConstrain(f)
	case scenario.KindAlign:
		return buildAlign(f)
	case scenario.KindMarkdown:
		return buildMarkdown(f)
	case scenario.KindJSON:
		return buildJSON(f)
	case scenario.KindSyntax:
		return buildSyntax(f)
	case scenario.KindTraceback:
		return buildTraceback(f)
	}
	return nil, &FieldError{Kind: kind, Message: fmt.Sprintf("no builder for kind %q", string(kind)), Err: ErrUnknownKind}
}

func buildFromANSI(f fields) (any, error) {
	s, err := f.requiredString("ansi")
	if err != nil {
		return nil, err
	}
	return console.FromANSI(s), nil
}

func buildMeasure(f fields) (any, error) {
	lo, err := f.requiredInt("minimum")
	if err != nil {
		return nil, err
	}
	hi, err := f.requiredInt("maximum")
	if err != nil {
		return nil, err
	}
	return &MeasureHook{Minimum: lo, Maximum: hi}, nil
}

func buildControl(f fields) (any, error) {
	op, err := f.str("operation", "clear")
	if err != nil {
		return nil, err
	}
	x, err := f.integer("x", 0)
	if err != nil {
		return nil, err
	}
	y, err := f.integer("y", 0)
	if err != nil {
		return nil, err
	}

	switch op {
	case "clear":
		return console.Clear(), nil
	case "home":
		return console.Home(), nil
	case "bell":
		return console.Bell(), nil
	case "move":
		return console.Move(x, y), nil
	case "move_to_column":
		return console.MoveToColumn(x, y), nil
	case "move_to":
		return console.MoveTo(x, y), nil
	case "show_cursor":
		show, err := f.boolean("show", true)
		if err != nil {
			return nil, err
		}
		return console.ShowCursor(show), nil
	case "alt_screen":
		enable, err := f.boolean("enable", true)
		if err != nil {
			return nil, err
		}
		return console.AltScreen(enable), nil
	case "title":
		title, err := f.str("title", "")
		if err != nil {
			return nil, err
		}
		return console.Title(title), nil
	}
	return nil, &FieldError{Kind: f.kind, Field: f.path("operation"), Message: fmt.Sprintf("unknown control operation %q", op), Err: ErrInvalidField}
}

func buildRule(f fields) (any, error) {
	title, err := f.str("title", "")
	if err != nil {
		return nil, err
	}
	chars, err := f.str("character", DefaultRuleCharacter)
	if err != nil {
		return nil, err
	}
	align, err := f.align("align", console.AlignCenter)
	if err != nil {
		return nil, err
	}
	rule := console.NewRule(title)
	rule.Characters = chars
	rule.Align = align
	return rule, nil
}

func buildPanel(f fields) (any, error) {
	text, err := f.requiredString("text")
	if err != nil {
		return nil, err
	}
	panel := console.NewPanel(text)
	if panel.Title, err = f.str("title", ""); err != nil {
		return nil, err
	}
	if panel.Subtitle, err = f.str("subtitle", ""); err != nil {
		return nil, err
	}
	if panel.Width, err = f.integer("width", 0); err != nil {
		return nil, err
	}
	box, err := f.str("box", console.BoxRounded)
	if err != nil {
		return nil, err
	}
	if !slices.Contains(console.BoxNames(), box) {
		return nil, &FieldError{Kind: f.kind, Field: f.path("box"), Message: fmt.Sprintf("unknown box %q", box), Err: ErrInvalidField}
	}
	panel.Box = box
	return panel, nil
}

func buildTable(f fields) (any, error) {
	headers, ok, err := f.strings("columns")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, f.missing("columns")
	}
	justifies, _, err := f.strings("column_justifies")
	if err != nil {
		return nil, err
	}

	columns := make([]console.Column, len(headers))
	for i, h := range headers {
		justify := console.AlignLeft
		if i < len(justifies) {
			a, ok := console.ParseAlign(justifies[i])
			if !ok {
				return nil, &FieldError{Kind: f.kind, Field: f.path(fmt.Sprintf("column_justifies[%d]", i)), Message: fmt.Sprintf("unknown justify %q", justifies[i]), Err: ErrInvalidField}
			}
			justify = a
		}
		columns[i] = console.Column{Header: h, Justify: justify}
	}

	table := console.NewTable(columns...)
	if table.ShowHeader, err = f.boolean("show_header", true); err != nil {
		return nil, err
	}
	if table.ShowLines, err = f.boolean("show_lines", false); err != nil {
		return nil, err
	}
	if table.Title, err = f.str("title", ""); err != nil {
		return nil, err
	}
	if table.Caption, err = f.str("caption", ""); err != nil {
		return nil, err
	}

	rows, _, err := f.array("rows")
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		cells, ok := row.(ir.IRArray)
		if !ok {
			return nil, f.invalid(fmt.Sprintf("rows[%d]", i), "array", row)
		}
		out := make([]string, len(cells))
		for j, cell := range cells {
			s, ok := cell.(ir.IRString)
			if !ok {
				return nil, f.invalid(fmt.Sprintf("rows[%d][%d]", i, j), "string", cell)
			}
			out[j] = string(s)
		}
		table.AddRow(out...)
	}
	return table, nil
}

func buildTree(f fields) (any, error) {
	return buildNode(f)
}

// buildNode builds one tree node and its children.
func buildNode(f fields) (*console.Tree, error) {
	label, err := f.requiredString("label")
	if err != nil {
		return nil, err
	}
	node := console.NewTree(label)
	children, _, err := f.array("children")
	if err != nil {
		return nil, err
	}
	for i, v := range children {
		name := fmt.Sprintf("children[%d]", i)
		obj, ok := v.(ir.IRObject)
		if !ok {
			return nil, f.invalid(name, "object", v)
		}
		child, err := buildNode(f.sub(name, obj))
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

func buildProgress(f fields) (any, error) {
	total, err := f.integer("total", 100)
	if err != nil {
		return nil, err
	}
	completed, err := f.integer("completed", 0)
	if err != nil {
		return nil, err
	}
	width, err := f.integer("width", 0)
	if err != nil {
		return nil, err
	}
	return &console.ProgressBar{Total: total, Completed: completed, Width: width}, nil
}

func buildColumns(f fields) (any, error) {
	items, ok, err := f.strings("items")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, f.missing("items")
	}
	values := make([]any, len(items))
	for i, item := range items {
		values[i] = item
	}
	return console.NewColumns(values...), nil
}

func buildPadding(f fields) (any, error) {
	text, err := f.requiredString("text")
	if err != nil {
		return nil, err
	}
	pad, ok, err := f.ints("pad")
	if err != nil {
		return nil, err
	}
	if !ok {
		pad = []int{0, 0, 0, 0}
	}
	switch len(pad) {
	case 1, 2, 4:
	default:
		return nil, &FieldError{Kind: f.kind, Field: f.path("pad"), Message: fmt.Sprintf("want 1, 2 or 4 values, got %d", len(pad)), Err: ErrInvalidField}
	}
	return console.NewPadding(text, pad...), nil
}

func buildConstrain(f fields) (any, error) {
	kind, err := f.str("child_kind", string(scenario.KindRule))
	if err != nil {
		return nil, err
	}
	input, _, err := f.object("child_input")
	if err != nil {
		return nil, err
	}
	if input == nil {
		input = ir.IRObject{}
	}

	width := 80
	if f.has("width") {
		// An explicit null passes the available width through.
		if width, err = f.integer("width", 0); err != nil {
			return nil, err
		}
		if _, isNull := f.in["width"].(ir.IRNull); !isNull && width < 1 {
			return nil, f.outOfRange("width", "at least 1", width)
		}
	}

	child, err := Build(scenario.Kind(kind), input)
	if err != nil {
		return nil, fmt.Errorf("%s: child: %w", f.kind, err)
	}
	return &console.Constrain{Child: child, Width: width}, nil
}

func buildAlign(f fields) (any, error) {
	text, err := f.requiredString("text")
	if err != nil {
		return nil, err
	}
	align, err := f.align("align", console.AlignLeft)
	if err != nil {
		return nil, err
	}
	width, err := f.integer("width", 0)
	if err != nil {
		return nil, err
	}
	return &console.Aligned{Body: text, Align: align, Width: width}, nil
}

func buildMarkdown(f fields) (any, error) {
	text, err := f.requiredString("text")
	if err != nil {
		return nil, err
	}
	md := console.NewMarkdown(text)
	if md.Hyperlinks, err = f.boolean("hyperlinks", true); err != nil {
		return nil, err
	}
	if md.CodeTheme, err = f.str("code_theme", console.DefaultCodeTheme); err != nil {
		return nil, err
	}
	return md, nil
}

func buildJSON(f fields) (any, error) {
	src, err := f.str("json", "{}")
	if err != nil {
		return nil, err
	}
	j := console.NewJSON(src)

	if f.has("indent") {
		switch v := f.in["indent"].(type) {
		case ir.IRNull:
			j.Indent = nil
		case ir.IRInt:
			j.Indent = console.IndentSpaces(int(v))
		case ir.IRString:
			s := string(v)
			j.Indent = &s
		default:
			return nil, f.invalid("indent", "integer, string or null", v)
		}
	}
	if j.Highlight, err = f.boolean("highlight", true); err != nil {
		return nil, err
	}
	if j.EnsureASCII, err = f.boolean("ensure_ascii", false); err != nil {
		return nil, err
	}
	if j.SortKeys, err = f.boolean("sort_keys", false); err != nil {
		return nil, err
	}
	return j, nil
}

func buildSyntax(f fields) (any, error) {
	code, err := f.requiredString("code")
	if err != nil {
		return nil, err
	}
	language, err := f.str("language", "rust")
	if err != nil {
		return nil, err
	}
	syntax := console.NewSyntax(code, language)
	if syntax.Theme, err = f.str("theme", console.DefaultCodeTheme); err != nil {
		return nil, err
	}
	if syntax.WordWrap, err = f.boolean("word_wrap", false); err != nil {
		return nil, err
	}
	if syntax.TabSize, err = f.integer("tab_size", syntax.TabSize); err != nil {
		return nil, err
	}
	return syntax, nil
}

func buildTraceback(f fields) (any, error) {
	tb := &console.Traceback{}
	var err error
	if tb.ExcType, err = f.str("exception_type", "Error"); err != nil {
		return nil, err
	}
	if tb.ExcValue, err = f.str("exception_message", ""); err != nil {
		return nil, err
	}
	if tb.ExtraLines, err = f.integer("extra_lines", 0); err != nil {
		return nil, err
	}
	if tb.WordWrap, err = f.boolean("word_wrap", false); err != nil {
		return nil, err
	}
	if tb.ShowLocals, err = f.boolean("show_locals", false); err != nil {
		return nil, err
	}
	if tb.IndentGuides, err = f.boolean("indent_guides", false); err != nil {
		return nil, err
	}

	frames, _, err := f.array("frames")
	if err != nil {
		return nil, err
	}
	for i, v := range frames {
		name := fmt.Sprintf("frames[%d]", i)
		obj, ok := v.(ir.IRObject)
		if !ok {
			return nil, f.invalid(name, "object", v)
		}
		ff := f.sub(name, obj)
		var frame console.Frame
		if frame.Filename, err = ff.str("filename", TracebackFilename); err != nil {
			return nil, err
		}
		if frame.Line, err = ff.integer("line", 0); err != nil {
			return nil, err
		}
		if frame.Name, err = ff.str("name", ""); err != nil {
			return nil, err
		}
		tb.Frames = append(tb.Frames, frame)
	}
	return tb, nil
}

func (f fields) align(name string, def console.Align) (console.Align, error) {
	s, err := f.str(name, string(def))
	if err != nil {
		return "", err
	}
	a, ok := console.ParseAlign(s)
	if !ok {
		return "", &FieldError{Kind: f.kind, Field: f.path(name), Message: fmt.Sprintf("unknown alignment %q", s), Err: ErrInvalidField}
	}
	return a, nil
}
