package fontutil

// Max fonts in a fallback chain.
const FontFallbackMax = 10

// Drawn when no font in the group has a glyph (empty box).
const PlaceholderRune = 0x25a1

// Ordered fallback chain. Terminated by the first nil entry; the group does
// not own the fonts. The first font is the primary font.
type FontGroup []*Font

func (fg FontGroup) fonts() []*Font {
	u := fg
	if len(u) > FontFallbackMax {
		u = u[:FontFallbackMax]
	}
	for i, f := range u {
		if f == nil {
			return u[:i]
		}
	}
	return u
}

// Nil if the group has no fonts.
func (fg FontGroup) Primary() *Font {
	u := fg.fonts()
	if len(u) == 0 {
		return nil
	}
	return u[0]
}

//----------

// Resolves ru to the first font that has it. Runes below 0x100 belong to
// the first font even without a glyph. Runes without a glyph in any font
// resolve to the placeholder box, or to the primary font's empty metric if
// the placeholder is also missing. Negative runes resolve as the
// placeholder. The group must have at least one font.
func (fg FontGroup) Glyph(ru rune, phase int) (*GlyphSet, *GlyphMetric, *Font) {
	phase = foldPhase(phase)
	if ru < 0 {
		ru = PlaceholderRune
	}
	if gs, m, f := fg.lookup(ru, phase); f != nil {
		return gs, m, f
	}
	if ru > 0xff && ru != PlaceholderRune {
		if gs, m, f := fg.lookup(PlaceholderRune, phase); f != nil {
			logger.V(2).Info("placeholder glyph", "rune", ru)
			return gs, m, f
		}
	}
	f := fg.Primary()
	gs := f.glyphSet(ru, phase)
	return gs, &gs.Metrics[ru%glyphSetSize], f
}

func (fg FontGroup) lookup(ru rune, phase int) (*GlyphSet, *GlyphMetric, *Font) {
	for _, f := range fg.fonts() {
		gs := f.glyphSet(ru, phase)
		m := &gs.Metrics[ru%glyphSetSize]
		if m.Loaded || ru < 0x100 {
			return gs, m, f
		}
	}
	return nil, nil, nil
}

func foldPhase(phase int) int {
	phase %= subpixelPhases
	if phase < 0 {
		phase += subpixelPhases
	}
	return phase
}

//----------

// Advance width of text in logical units.
func (fg FontGroup) Width(text string) float64 {
	if fg.Primary() == nil {
		return 0
	}
	w := float32(0)
	for len(text) > 0 {
		ru, n := DecodeRuneInString(text)
		text = text[n:]
		_, m, _ := fg.Glyph(ru, 0)
		if m.XAdvance != 0 {
			w += m.XAdvance
		} else {
			w += fg.Primary().SpaceAdvance
		}
	}
	return float64(w) / float64(fg.Primary().Opt.scale())
}

// Sets the tab advance to n space advances in every font.
func (fg FontGroup) SetTabSize(n int) {
	for _, f := range fg.fonts() {
		f.TabAdvance = f.SpaceAdvance * float32(n)
		for j := 0; j < f.phaseCount(); j++ {
			gs := f.glyphSet('\t', j)
			gs.Metrics['\t'].XAdvance = f.TabAdvance
		}
	}
}

func (fg FontGroup) TabSize() int {
	f := fg.Primary()
	if f == nil || f.SpaceAdvance == 0 {
		return 0
	}
	return int(f.glyphSet('\t', 0).Metrics['\t'].XAdvance / f.SpaceAdvance)
}

func (fg FontGroup) Size() float64 {
	if f := fg.Primary(); f != nil {
		return f.Size
	}
	return 0
}

func (fg FontGroup) Height() int {
	if f := fg.Primary(); f != nil {
		return f.Height
	}
	return 0
}
