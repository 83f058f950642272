package strview

import "strings"

// ScrollKind identifies which of the six display states a View is in.
type ScrollKind int

const (
	// Fits means the entire value is displayed unmodified.
	Fits ScrollKind = iota
	// OffScreen means the value isn't displayed at all (no room for it).
	OffScreen
	// Ellided means there's only room for a single ellipsis character.
	Ellided
	// Prefix means a prefix of the value, up to End, is displayed.
	Prefix
	// Suffix means a suffix of the value, starting at Start, is displayed.
	Suffix
	// Middle means value[Start:End] is displayed with ellipses on both sides.
	Middle
)

// View is a scrollable window onto a string, bounded to a fixed number of
// terminal columns. Start/End are byte offsets into the value the View was
// created for; they are only meaningful for the Suffix/Prefix/Middle kinds.
type View struct {
	Kind        ScrollKind
	Start, End  int
	Replacement bool
}

// Init creates the initial, left-aligned view of value within
// availableSpace columns.
func Init(value string, availableSpace int) View { return initView(value, availableSpace, true) }

// InitBack creates the initial, right-aligned view (as if the user jumped
// straight to the end of a long value).
func InitBack(value string, availableSpace int) View { return initView(value, availableSpace, false) }

func initView(value string, availableSpace int, fromFront bool) View {
	if availableSpace < 0 || (availableSpace == 0 && len(value) != 0) {
		return View{Kind: OffScreen}
	}
	if len(value) <= availableSpace {
		return View{Kind: Fits}
	}

	bounds := boundaries(value)
	n := len(bounds) - 1
	valueLen := len(value)

	usedSpace := 0
	offset := 0

	if fromFront {
		for i := 0; i < n; i++ {
			g := value[bounds[i]:bounds[i+1]]
			gw := width(g)
			spaceWithGrapheme := usedSpace + gw
			if offset+len(g) < valueLen {
				spaceWithGrapheme++
			}
			if spaceWithGrapheme > availableSpace {
				break
			}
			usedSpace += gw
			offset += len(g)
		}
	} else {
		for i := n - 1; i >= 0; i-- {
			g := value[bounds[i]:bounds[i+1]]
			gw := width(g)
			spaceWithGrapheme := usedSpace + gw
			if offset+len(g) < valueLen {
				spaceWithGrapheme++
			}
			if spaceWithGrapheme > availableSpace {
				break
			}
			usedSpace += gw
			offset += len(g)
		}
	}

	if offset == valueLen {
		return View{Kind: Fits}
	}
	if availableSpace == 1 {
		return View{Kind: Ellided}
	}
	if fromFront {
		return View{Kind: Prefix, End: offset, Replacement: offset == 0}
	}
	return View{Kind: Suffix, Start: valueLen - offset, Replacement: offset == 0}
}

// Render formats value according to v, writing ellipses/replacement
// characters for the hidden portions.
func (v View) Render(value string) string {
	switch v.Kind {
	case Fits:
		return value
	case OffScreen:
		return ""
	case Ellided:
		return ellipsis
	case Prefix:
		var b strings.Builder
		b.WriteString(value[:v.End])
		if v.Replacement {
			b.WriteString(replacementRune)
		}
		b.WriteString(ellipsis)
		return b.String()
	case Suffix:
		var b strings.Builder
		b.WriteString(ellipsis)
		if v.Replacement {
			b.WriteString(replacementRune)
		}
		b.WriteString(value[v.Start:])
		return b.String()
	case Middle:
		var b strings.Builder
		b.WriteString(ellipsis)
		if v.Replacement {
			b.WriteString(replacementRune)
		}
		b.WriteString(value[v.Start:v.End])
		b.WriteString(ellipsis)
		return b.String()
	default:
		return ""
	}
}

// ScrollRight shifts the visible window one grapheme to the right.
func (v View) ScrollRight(value string, availableSpace int) View {
	var start, end int
	switch v.Kind {
	case Fits, OffScreen, Ellided, Suffix:
		return v
	case Prefix:
		start, end = 0, v.End
	case Middle:
		start, end = v.Start, v.End
	default:
		return v
	}

	valueLen := len(value)
	bounds := boundaries(value)

	usedSpace := width(value[start:end]) + 1
	if start != 0 {
		usedSpace++
	}

	endIdx := clusterIndex(bounds, end)
	if endIdx < len(bounds)-1 {
		g := value[bounds[endIdx]:bounds[endIdx+1]]
		end += len(g)
		usedSpace += width(g)
		if end == valueLen {
			usedSpace--
		}
	}

	if usedSpace > availableSpace {
		startIdx := clusterIndex(bounds, start)
		endIdxNow := clusterIndex(bounds, end)
		for i := startIdx; i < endIdxNow; i++ {
			g := value[bounds[i]:bounds[i+1]]
			gw := width(g)
			if start == 0 {
				usedSpace++
			}
			start += len(g)
			usedSpace -= gw
			if usedSpace <= availableSpace {
				break
			}
		}
	}

	if start == end {
		if end == valueLen {
			return View{Kind: Suffix, Start: start, Replacement: true}
		}
		return View{Kind: Middle, Start: start, End: end, Replacement: true}
	}

	endIdx2 := clusterIndex(bounds, end)
	for i := endIdx2; i < len(bounds)-1; i++ {
		g := value[bounds[i]:bounds[i+1]]
		w := width(g)
		usedWithG := usedSpace + w
		nowAtEnd := end+len(g) == valueLen
		if nowAtEnd {
			usedWithG--
		}
		if usedWithG <= availableSpace {
			usedSpace = usedWithG
			end += len(g)
		}
	}

	if end == valueLen {
		return View{Kind: Suffix, Start: start, Replacement: false}
	}
	return View{Kind: Middle, Start: start, End: end, Replacement: false}
}

// ScrollLeft shifts the visible window one grapheme to the left.
func (v View) ScrollLeft(value string, availableSpace int) View {
	var start, end int
	switch v.Kind {
	case Fits, OffScreen, Ellided, Prefix:
		return v
	case Suffix:
		start, end = v.Start, len(value)
	case Middle:
		start, end = v.Start, v.End
	default:
		return v
	}

	valueLen := len(value)
	bounds := boundaries(value)

	usedSpace := 1 + width(value[start:end])
	if end != valueLen {
		usedSpace++
	}

	startIdx := clusterIndex(bounds, start)
	if startIdx > 0 {
		g := value[bounds[startIdx-1]:bounds[startIdx]]
		start -= len(g)
		usedSpace += width(g)
		if start == 0 {
			usedSpace--
		}
	}

	if usedSpace > availableSpace {
		endIdxNow := clusterIndex(bounds, end)
		startIdxNow := clusterIndex(bounds, start)
		for i := endIdxNow; i > startIdxNow; i-- {
			g := value[bounds[i-1]:bounds[i]]
			gw := width(g)
			if end == valueLen {
				usedSpace++
			}
			end -= len(g)
			usedSpace -= gw
			if usedSpace <= availableSpace {
				break
			}
		}
	}

	if start == end {
		if start == 0 {
			return View{Kind: Prefix, End: end, Replacement: true}
		}
		return View{Kind: Middle, Start: start, End: end, Replacement: true}
	}

	startIdx2 := clusterIndex(bounds, start)
	for i := startIdx2; i > 0; i-- {
		g := value[bounds[i-1]:bounds[i]]
		w := width(g)
		usedWithG := usedSpace + w
		nowAtStart := start-len(g) == 0
		if nowAtStart {
			usedWithG--
		}
		if usedWithG <= availableSpace {
			usedSpace = usedWithG
			start -= len(g)
		}
	}

	if start == 0 {
		return View{Kind: Prefix, End: end, Replacement: false}
	}
	return View{Kind: Middle, Start: start, End: end, Replacement: false}
}

// JumpToAnEnd jumps a Prefix/Middle view to showing the tail of the value,
// or a Suffix view to showing its head.
func (v View) JumpToAnEnd(value string, availableSpace int) View {
	switch v.Kind {
	case Prefix, Middle:
		return initView(value, availableSpace, false)
	case Suffix:
		return initView(value, availableSpace, true)
	default:
		return v
	}
}

// Expand grows the visible window to the right as far as it will fit,
// falling back to InitBack once the right edge is reached. Used when the
// user explicitly widens the focused column.
func (v View) Expand(value string, availableSpace int) View {
	var start, end int
	switch v.Kind {
	case Fits:
		return v
	case OffScreen, Ellided, Prefix:
		return initView(value, availableSpace, true)
	case Suffix:
		return initView(value, availableSpace, false)
	case Middle:
		start, end = v.Start, v.End
	default:
		return v
	}

	valueLen := len(value)
	bounds := boundaries(value)
	usedSpace := 1 + width(value[start:end])

	endIdx := clusterIndex(bounds, end)
	for i := endIdx; i < len(bounds)-1; i++ {
		g := value[bounds[i]:bounds[i+1]]
		gw := width(g)
		spaceWithGrapheme := usedSpace + gw
		if end+len(g) < valueLen {
			spaceWithGrapheme++
		}
		if spaceWithGrapheme > availableSpace {
			break
		}
		usedSpace += gw
		end += len(g)
	}

	if end == valueLen {
		return initView(value, availableSpace, false)
	}
	return View{Kind: Middle, Start: start, End: end, Replacement: start == end}
}

// Shrink narrows a Middle view back down to availableSpace columns, used
// when a column's budget decreases (e.g. a terminal resize).
func (v View) Shrink(value string, availableSpace int) View {
	var start, end int
	switch v.Kind {
	case OffScreen:
		return v
	case Fits, Ellided, Prefix:
		return initView(value, availableSpace, true)
	case Suffix:
		return initView(value, availableSpace, false)
	case Middle:
		start, end = v.Start, v.End
	default:
		return v
	}

	if availableSpace < 3 {
		return initView(value, availableSpace, true)
	}

	usedSpace := 2 + width(value[start:end])
	if usedSpace <= availableSpace {
		return v
	}

	bounds := boundaries(value)
	endIdx := clusterIndex(bounds, end)
	startIdx := clusterIndex(bounds, start)
	for i := endIdx; i > startIdx; i-- {
		g := value[bounds[i-1]:bounds[i]]
		gw := width(g)
		usedSpace -= gw
		end -= len(g)
		if usedSpace <= availableSpace || start == end {
			break
		}
	}

	return View{Kind: Middle, Start: start, End: end, Replacement: start == end}
}
