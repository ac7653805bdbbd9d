package validation

import (
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// restrictedSymbols covers emoji, pictographs and the enclosed/dingbat blocks.
// The 0x24C2..0x1F251 span is deliberately broad: it also matches CJK
// ideographs, Hangul and most other scripts above U+24C2.
var restrictedSymbols = rangetable.Merge(
	span(0x1F600, 0x1F64F), // emoticons
	span(0x1F300, 0x1F5FF), // misc symbols and pictographs
	span(0x1F680, 0x1F6FF), // transport and map
	span(0x1F700, 0x1F77F), // alchemical
	span(0x1F780, 0x1F7FF), // geometric shapes extended
	span(0x1F800, 0x1F8FF), // supplemental arrows-c
	span(0x1F900, 0x1F9FF), // supplemental symbols and pictographs
	span(0x1FA00, 0x1FA6F), // chess
	span(0x1FA70, 0x1FAFF), // symbols and pictographs extended-a
	span(0x2600, 0x26FF),   // misc symbols
	span(0x2700, 0x27BF),   // dingbats
	span(0x2300, 0x23FF),   // misc technical
	span(0x2B50, 0x2B50),
	span(0x3030, 0x3030),
	span(0x2B06, 0x2B06),
	span(0x2194, 0x2194),
	span(0x1F004, 0x1F004),
	span(0x1F0CF, 0x1F0CF),
	span(0x1F171, 0x1F171),
	span(0x1F18E, 0x1F18E),
	span(0x1F191, 0x1F19A),
	span(0x1F1E6, 0x1F1FF), // regional indicators
	span(0x24C2, 0x1F251),  // enclosed characters
)

// span builds a single-range table, splitting at the BMP boundary
func span(lo, hi rune) *unicode.RangeTable {
	rt := &unicode.RangeTable{}
	if lo <= 0xFFFF {
		top := hi
		if top > 0xFFFF {
			top = 0xFFFF
		}
		rt.R16 = []unicode.Range16{{Lo: uint16(lo), Hi: uint16(top), Stride: 1}}
	}
	if hi > 0xFFFF {
		start := lo
		if start < 0x10000 {
			start = 0x10000
		}
		rt.R32 = []unicode.Range32{{Lo: uint32(start), Hi: uint32(hi), Stride: 1}}
	}
	return rt
}

// ContainsRestrictedSymbol reports whether any rune of text falls in the
// restricted symbol table
func ContainsRestrictedSymbol(text string) bool {
	for _, r := range text {
		if unicode.Is(restrictedSymbols, r) {
			return true
		}
	}
	return false
}
