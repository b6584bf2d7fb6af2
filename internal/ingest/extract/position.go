package extract

import "strings"

// ConfirmPosition reconciles a claimed character offset of linked text
// inside a lyric. A subset of source annotations carries a known
// off-by-one: when the text occurs exactly once and the claimed offset is
// exactly one greater than the real one, the offset is corrected down by
// one. In every other locatable case the claimed offset is trusted as-is.
//
// The second return value is false when the text cannot be located in the
// lyric at all — a reportable data-quality condition, not a fatal error.
func ConfirmPosition(lyric, text string, claimed int) (int, bool) {
	idx := strings.Index(lyric, text)
	if idx < 0 {
		return claimed, false
	}
	if strings.Count(lyric, text) == 1 && claimed-1 == idx {
		return idx, true
	}
	return claimed, true
}
