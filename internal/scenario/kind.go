package scenario

// Kind selects which renderable family a scenario constructs.
type Kind string

// Scenario kinds. The string values are the wire names used in catalogs
// and fixture documents.
const (
	KindText            Kind = "text"
	KindTextFromANSI    Kind = "text_from_ansi"
	KindProtocolCast    Kind = "protocol_rich_cast"
	KindProtocolMeasure Kind = "protocol_measure"
	KindControl         Kind = "control"
	KindRule            Kind = "rule"
	KindPanel           Kind = "panel"
	KindTable           Kind = "table"
	KindTree            Kind = "tree"
	KindProgress        Kind = "progress"
	KindColumns         Kind = "columns"
	KindPadding         Kind = "padding"
	KindConstrain       Kind = "constrain"
	KindAlign           Kind = "align"
	KindMarkdown        Kind = "markdown"
	KindJSON            Kind = "json"
	KindSyntax          Kind = "syntax"
	KindTraceback       Kind = "traceback"
)

var allKinds = []Kind{
	KindText,
	KindTextFromANSI,
	KindProtocolCast,
	KindProtocolMeasure,
	KindControl,
	KindRule,
	KindPanel,
	KindTable,
	KindTree,
	KindProgress,
	KindColumns,
	KindPadding,
	KindConstrain,
	KindAlign,
	KindMarkdown,
	KindJSON,
	KindSyntax,
	KindTraceback,
}

// Kinds returns every known kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	for _, known := range allKinds {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}
