// Package render formats a single flatdoc.Row into a fixed-width terminal
// line: indentation, focus/container indicator, object key or array index
// label, value (or a collapsed-container preview), trailing comma, and a
// truncation marker when the column budget runs out before everything fits.
//
// Layout, left to right:
//
//  1. Focus/container indicator (2 cells).
//  2. Indent (depth * tab size cells).
//  3. Label: key or index, followed by ": ".
//  4. Value, container preview, or open/close brace.
//  5. Trailing comma (line mode only).
//
// Truncation when space runs out: the label is laid out first and is
// shortened (with an ellipsis) only as far as needed to leave its ": " and
// one column for the value; the value then gets whatever columns remain and
// is shortened with an ellipsis to fit them. A label or value that does not
// fit even shortened is dropped, together with everything after it, and a
// truncation indicator is drawn in its place. The value is not shortened
// ahead of the label, and no fixed minimum lengths are kept.
package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/trygveh/sdp/internal/flatdoc"
	"github.com/trygveh/sdp/internal/strview"
)

// Mode selects between the two rendering layouts: one row per flatdoc.Row
// (Line) or one row per data item, collapsing containers to previews and
// skipping closing rows (Data).
type Mode int

const (
	LineMode Mode = iota
	DataMode
)

const (
	focusedLineIndicator           = "▶ "
	focusedCollapsedContainerGlyph = "▶ "
	focusedExpandedContainerGlyph  = "▼ "
	collapsedContainerGlyph        = "▷ "
	expandedContainerGlyph         = "▽ "
	indicatorWidth                 = 2
	truncationIndicator            = ">"
)

// Category names a color class from the line formatter's palette. Concrete
// colors are chosen once, in Styles, and never referenced elsewhere.
type Category int

const (
	CategoryKey Category = iota
	CategoryFocusedKey
	CategoryIndex
	CategoryFocusedIndex
	CategoryNull
	CategoryBoolean
	CategoryNumber
	CategoryString
	CategoryPreview
	CategoryMatch
	CategoryFocusedMatch
	CategoryPunctuation
)

// Styles holds one lipgloss.Style per Category, built once and reused for
// every line.
type Styles struct {
	styles map[Category]lipgloss.Style
}

// DefaultStyles builds the color policy described informally in the line
// formatter's documentation: keys in a blue family, indices dimmed, each
// primitive kind its own hue, previews dimmed, and matches inverted (the
// focused match additionally bold).
func DefaultStyles() Styles {
	bold := lipgloss.NewStyle().Bold(true)
	return Styles{styles: map[Category]lipgloss.Style{
		CategoryKey:          lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		CategoryFocusedKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Background(lipgloss.Color("15")),
		CategoryIndex:        lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CategoryFocusedIndex: bold,
		CategoryNull:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CategoryBoolean:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		CategoryNumber:       lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		CategoryString:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		CategoryPreview:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		CategoryMatch:        lipgloss.NewStyle().Reverse(true),
		CategoryFocusedMatch: lipgloss.NewStyle().Reverse(true).Bold(true),
		CategoryPunctuation:  lipgloss.NewStyle(),
	}}
}

func (s Styles) style(c Category) lipgloss.Style { return s.styles[c] }

// ValueCategory maps a primitive row's Kind to its color category.
func ValueCategory(k flatdoc.Kind) Category {
	switch k {
	case flatdoc.Null:
		return CategoryNull
	case flatdoc.Boolean:
		return CategoryBoolean
	case flatdoc.Number:
		return CategoryNumber
	case flatdoc.String:
		return CategoryString
	default:
		return CategoryPreview
	}
}

// MatchRange is a single search-match byte span in the pretty text, used to
// switch styles mid-value while walking graphemes.
type MatchRange struct {
	Start, End int
	Focused    bool
}

// Label describes the key or array index column, or its absence.
type Label struct {
	Present bool
	// Quoted is true for object keys drawn with surrounding quotes. A label
	// with neither Quoted nor IsIndex set (a synthetic key) is drawn with no
	// delimiters; IsIndex takes precedence and draws brackets.
	Quoted bool
	// IsIndex distinguishes an array index label from an object key
	// label; only meaningful when Present is true.
	IsIndex bool
	Text    string
}

// Line is everything the formatter needs to draw one row.
type Line struct {
	Mode Mode

	Depth   int
	TabSize int

	Focused            bool
	SecondarilyFocused bool
	TrailingComma      bool

	Label Label

	// Row is the flatdoc row this line renders. Its Kind determines
	// whether Value below is used directly or replaced by a container
	// preview/brace.
	Row *flatdoc.Row
	Doc *flatdoc.FlatDocument

	// Matches are search-match byte ranges in pretty-text coordinates.
	// Only the parts overlapping the displayed primitive value are drawn
	// with the match/focused-match style; label text and container
	// previews are not highlighted.
	Matches []MatchRange
}

// Format renders one Line into a string of at most width display columns
// (not counting any ANSI escapes lipgloss adds). It never panics on a
// too-narrow width; it degrades to an empty label/value and a truncation
// indicator.
func Format(l Line, width int, styles Styles) string {
	var b strings.Builder

	indicatorPrinted := printFocusOrContainerIndicator(&b, l, styles)

	labelDepth := indicatorWidth + l.Depth*l.TabSize
	available := width - labelDepth

	// The indicator occupies its own 2 columns; pad the rest of the
	// indentation (and, if no indicator was drawn, those 2 columns too).
	for i := indicatorPrinted; i < labelDepth; i++ {
		b.WriteByte(' ')
	}

	usedForLabel := fillInLabel(&b, l, available, styles)
	available -= usedForLabel

	if l.Label.Present && usedForLabel == 0 {
		printTruncatedIndicator(&b, styles)
		return b.String()
	}

	usedForValue := fillInValue(&b, l, available, styles)
	if usedForValue == 0 {
		printTruncatedIndicator(&b, styles)
	}

	return b.String()
}

// printFocusOrContainerIndicator writes the 2-column indicator glyph (when
// applicable) and returns how many columns it consumed, so the caller can
// pad the rest of the indentation without double-counting.
func printFocusOrContainerIndicator(b *strings.Builder, l Line, styles Styles) int {
	switch l.Mode {
	case LineMode:
		if l.Focused {
			b.WriteString(focusedLineIndicator)
			return indicatorWidth
		}
	case DataMode:
		if l.Row == nil || !l.Row.IsOpening() {
			return 0
		}
		switch {
		case l.Focused && l.Row.IsCollapsed():
			b.WriteString(focusedCollapsedContainerGlyph)
		case l.Focused && l.Row.IsExpanded():
			b.WriteString(focusedExpandedContainerGlyph)
		case l.Row.IsCollapsed():
			b.WriteString(collapsedContainerGlyph)
		default:
			b.WriteString(expandedContainerGlyph)
		}
		return indicatorWidth
	}
	return 0
}

func printTruncatedIndicator(b *strings.Builder, styles Styles) {
	b.WriteString(styles.style(CategoryPunctuation).Render(truncationIndicator))
}

// fillInLabel mirrors the truncation priority for the label column: try the
// whole label, then truncate to fit minus the two bracket/quote cells and
// minus one cell reserved so the value gets at least a single character.
func fillInLabel(b *strings.Builder, l Line, available int, styles Styles) int {
	if !l.Label.Present {
		return 0
	}

	left, right := "", ""
	var style lipgloss.Style
	switch {
	case l.Label.IsIndex:
		left, right = "[", "]"
		if l.Focused {
			style = styles.style(CategoryFocusedIndex)
		} else {
			style = styles.style(CategoryIndex)
		}
	case l.Label.Quoted:
		left, right = `"`, `"`
		if l.Focused {
			style = styles.style(CategoryFocusedKey)
		} else {
			style = styles.style(CategoryKey)
		}
	default:
		if l.Focused {
			style = styles.style(CategoryFocusedKey)
		} else {
			style = styles.style(CategoryKey)
		}
	}

	bracketWidth := 0
	if left != "" {
		bracketWidth = 2
	}

	// Reserve 2 for ": ", and one more so the value has room for at
	// least a single character or its own truncation indicator.
	budget := available - bracketWidth - 2 - 1

	text := l.Label.Text
	truncated := false
	used := 0

	result := strview.TruncateRightToFit(text, budget, "…")
	switch result.Kind {
	case strview.NoTruncation:
		used = result.Width
	case strview.Truncated:
		text = result.Text
		truncated = true
		used = result.Width
	case strview.DoesntFit:
		return 0
	}

	b.WriteString(style.Render(left))
	b.WriteString(style.Render(text))
	if truncated {
		b.WriteString(style.Render("…"))
	}
	b.WriteString(style.Render(right))
	b.WriteString(": ")

	return used + bracketWidth + 2
}

func fillInValue(b *strings.Builder, l Line, available int, styles Styles) int {
	row := l.Row
	if row == nil {
		return 0
	}

	if row.IsContainer() || row.IsEmptyContainer() {
		return fillInContainerValue(b, l, available, styles)
	}

	text, quoted, category := primitiveText(l.Doc, row)
	absStart := row.ValueRange.Start
	if quoted && len(text) >= 2 {
		// The pretty text already holds the quotes; fillInScalarValue
		// draws its own, so pass only what is between them.
		text = text[1 : len(text)-1]
		absStart++
	}
	return fillInScalarValue(b, text, quoted, l.TrailingComma, available, styles.style(category), absStart, l.Matches, styles)
}

func primitiveText(doc *flatdoc.FlatDocument, row *flatdoc.Row) (text string, quoted bool, cat Category) {
	text = doc.Pretty[row.ValueRange.Start:row.ValueRange.End]
	cat = ValueCategory(row.Kind)
	quoted = row.Kind == flatdoc.String
	return
}

// fillInScalarValue renders a primitive value, truncating to fit and
// switching to the match/focused-match style wherever a range in matches
// overlaps the (possibly truncated) displayed slice. absStart is value's
// starting byte offset within the pretty text, used to translate matches
// (which are expressed in pretty-text coordinates) into offsets within
// value.
func fillInScalarValue(b *strings.Builder, value string, quoted bool, trailingComma bool, available int, style lipgloss.Style, absStart int, matches []MatchRange, styles Styles) int {
	if quoted {
		available -= 2
	}
	if trailingComma {
		available -= 1
	}

	truncated := false
	used := 0
	result := strview.TruncateRightToFit(value, available, "…")
	switch result.Kind {
	case strview.NoTruncation:
		used = result.Width
	case strview.Truncated:
		value = result.Text
		truncated = true
		used = result.Width
	case strview.DoesntFit:
		return 0
	}

	if quoted {
		used += 1
		b.WriteString(style.Render(`"`))
	}
	writeWithMatches(b, value, absStart, matches, style, styles)
	if truncated {
		b.WriteString(style.Render("…"))
	}
	if quoted {
		used += 1
		b.WriteString(style.Render(`"`))
	}
	if trailingComma {
		used += 1
		b.WriteByte(',')
	}

	return used
}

// writeWithMatches writes value styled with base, except that any byte
// range in matches overlapping [absStart, absStart+len(value)) is drawn with
// the match or focused-match style instead.
func writeWithMatches(b *strings.Builder, value string, absStart int, matches []MatchRange, base lipgloss.Style, styles Styles) {
	if len(matches) == 0 {
		b.WriteString(base.Render(value))
		return
	}

	absEnd := absStart + len(value)
	pos := 0
	for _, m := range matches {
		start := m.Start - absStart
		end := m.End - absStart
		if start < 0 {
			start = 0
		}
		if end > len(value) {
			end = len(value)
		}
		if m.Start >= absEnd || m.End <= absStart || start >= end {
			continue
		}
		if start > pos {
			b.WriteString(base.Render(value[pos:start]))
		}
		style := styles.style(CategoryMatch)
		if m.Focused {
			style = styles.style(CategoryFocusedMatch)
		}
		b.WriteString(style.Render(value[start:end]))
		pos = end
	}
	if pos < len(value) {
		b.WriteString(base.Render(value[pos:]))
	}
}

// fillInContainerValue implements the 8-state table from the line
// formatter's documentation: {Line,Data} x {opening,closing} x
// {expanded,collapsed}, skipping the impossible combinations (a closing row
// is never rendered in data mode, and a collapsed container never has a
// visible closing row).
func fillInContainerValue(b *strings.Builder, l Line, available int, styles Styles) int {
	row := l.Row

	if row.IsEmptyContainer() {
		return fillInScalarValue(b, emptyContainerText(row), false, l.TrailingComma, available, styles.style(CategoryPreview), 0, nil, styles)
	}

	opening := row.IsOpening()
	expanded := row.IsExpanded()

	switch {
	case l.Mode == LineMode && opening && expanded:
		return fillInContainerOpenChar(b, available, row, l.Focused || l.SecondarilyFocused)
	case l.Mode == LineMode && !opening && expanded:
		return fillInContainerCloseChar(b, available, row, l.TrailingComma, l.Focused || l.SecondarilyFocused)
	default:
		// (Line, open, collapsed) | (Data, open, expanded) | (Data, open, collapsed)
		return fillInContainerPreview(b, l, available, styles)
	}
}

func emptyContainerText(row *flatdoc.Row) string {
	if row.Kind == flatdoc.EmptyObject {
		return "{}"
	}
	return "[]"
}

func openChar(ct flatdoc.ContainerType) byte {
	if ct == flatdoc.Array {
		return '['
	}
	return '{'
}

func closeChar(ct flatdoc.ContainerType) byte {
	if ct == flatdoc.Array {
		return ']'
	}
	return '}'
}

func fillInContainerOpenChar(b *strings.Builder, available int, row *flatdoc.Row, bold bool) int {
	if available <= 0 {
		return 0
	}
	ch := string(openChar(row.Container))
	if bold {
		ch = lipgloss.NewStyle().Bold(true).Render(ch)
	}
	b.WriteString(ch)
	return 1
}

func fillInContainerCloseChar(b *strings.Builder, available int, row *flatdoc.Row, trailingComma bool, bold bool) int {
	needed := 1
	if trailingComma {
		needed = 2
	}
	if available < needed {
		return 0
	}

	ch := string(closeChar(row.Container))
	if bold {
		ch = lipgloss.NewStyle().Bold(true).Render(ch)
	}
	b.WriteString(ch)
	if trailingComma {
		b.WriteByte(',')
	}
	return needed
}

func fillInContainerPreview(b *strings.Builder, l Line, available int, styles Styles) int {
	if l.TrailingComma {
		available -= 1
	}

	style := styles.style(CategoryPreview)
	if l.Focused {
		style = lipgloss.NewStyle()
	}

	used := generateContainerPreview(b, l.Doc, l.Row, available, style)
	if used == 0 {
		return 0
	}
	if l.TrailingComma {
		used += 1
		b.WriteByte(',')
	}
	return used
}

// generateContainerPreview renders "{k: v, k2: v2, …}" (or the array
// equivalent), walking children until space runs out.
func generateContainerPreview(b *strings.Builder, doc *flatdoc.FlatDocument, row *flatdoc.Row, available int, style lipgloss.Style) int {
	// Minimum required: "[…]".
	if available < 3 {
		return 0
	}

	available -= 2
	printed := 2

	b.WriteString(style.Render(string(openChar(row.Container))))

	child := row.FirstChild
	for child != flatdoc.Nil {
		next := doc.Rows[child].NextSibling
		reserveForTail := 0
		if next != flatdoc.Nil {
			reserveForTail = 3
		}

		used := fillInContainerElemPreview(b, doc, &doc.Rows[child], available-reserveForTail, style)
		if used == 0 {
			b.WriteString(style.Render("…"))
			available -= 1
			printed += 1
			break
		}

		if next != flatdoc.Nil {
			b.WriteString(style.Render(", "))
			available -= 2
			printed += 2
		}

		available -= used
		printed += used
		child = next
	}

	b.WriteString(style.Render(string(closeChar(row.Container))))
	return printed
}

func fillInContainerElemPreview(b *strings.Builder, doc *flatdoc.FlatDocument, row *flatdoc.Row, available int, style lipgloss.Style) int {
	required := 1
	if row.Key != nil {
		required += strview.MinRequiredColumns(row.Key.Raw) + 2
	}
	if available < required {
		return 0
	}

	used := 0
	if row.Key != nil {
		keyBudget := available - 2
		result := strview.TruncateRightToFit(row.Key.Raw, keyBudget, "…")
		keyText := row.Key.Raw
		truncated := false
		switch result.Kind {
		case strview.NoTruncation:
			available -= result.Width
			used += result.Width
		case strview.Truncated:
			available -= result.Width
			used += result.Width
			keyText = result.Text
			truncated = true
		}

		b.WriteString(style.Render(keyText))
		if truncated {
			b.WriteString(style.Render("…"))
		}
		b.WriteString(style.Render(": "))
		available -= 2
		used += 2
	}

	used += fillInValuePreview(b, doc, row, available, style)
	return used
}

func fillInValuePreview(b *strings.Builder, doc *flatdoc.FlatDocument, row *flatdoc.Row, available int, style lipgloss.Style) int {
	var valueText string
	quoted := false

	switch {
	case row.IsEmptyContainer():
		valueText = emptyContainerText(row)
	case row.IsOpening():
		valueText = collapsedPreviewGlyph(row.Container)
	default:
		valueText = doc.Pretty[row.ValueRange.Start:row.ValueRange.End]
		quoted = row.Kind == flatdoc.String
		if quoted && len(valueText) >= 2 {
			// Drop the pretty text's own quotes; they are drawn below.
			valueText = valueText[1 : len(valueText)-1]
		}
	}

	required := strview.MinRequiredColumns(valueText)
	if quoted {
		required += 2
	}
	if available < required {
		return 0
	}

	if quoted {
		b.WriteString(style.Render(`"`))
	}
	result := strview.TruncateRightToFit(valueText, available-boolToInt(quoted)*2, "…")
	used := 0
	switch result.Kind {
	case strview.NoTruncation:
		b.WriteString(style.Render(valueText))
		used = result.Width
	case strview.Truncated:
		b.WriteString(style.Render(result.Text))
		b.WriteString(style.Render("…"))
		used = result.Width
	case strview.DoesntFit:
		return 0
	}
	if quoted {
		b.WriteString(style.Render(`"`))
		used += 2
	}
	return used
}

func collapsedPreviewGlyph(ct flatdoc.ContainerType) string {
	if ct == flatdoc.Array {
		return "[…]"
	}
	return "{…}"
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
