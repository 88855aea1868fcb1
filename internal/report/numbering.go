package report

import (
	"strconv"

	"github.com/piwi3910/cutlist/internal/model"
)

// Numbering controls how piece numbers are assigned.
type Numbering struct {
	Letter          bool // A, B, ..., Z, AA, ... instead of 1, 2, 3, ...
	SequenceByGroup bool // Restart at the first number in every group
}

// NumberingFromSettings extracts the numbering options of s.
func NumberingFromSettings(s model.Settings) Numbering {
	return Numbering{Letter: s.PieceNumberLetter, SequenceByGroup: s.PieceNumberSequenceByGroup}
}

// FormatNumber renders the 1-based ordinal n as digits or letters.
func (n Numbering) FormatNumber(ordinal int) string {
	if n.Letter {
		return Letters(ordinal)
	}
	return strconv.Itoa(ordinal)
}

// Letters renders a 1-based ordinal in bijective base 26:
// 1 -> A, 26 -> Z, 27 -> AA, 52 -> AZ, 53 -> BA, 702 -> ZZ, 703 -> AAA.
// Ordinals below 1 render as an empty string.
func Letters(ordinal int) string {
	var buf []byte
	for ordinal > 0 {
		ordinal--
		buf = append(buf, byte('A'+ordinal%26))
		ordinal /= 26
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// sequence hands out consecutive piece numbers.
type sequence struct {
	numbering Numbering
	next      int
}

func newSequence(n Numbering) *sequence {
	return &sequence{numbering: n, next: 1}
}

// startGroup resets the sequence when numbering restarts per group.
func (s *sequence) startGroup() {
	if s.numbering.SequenceByGroup {
		s.next = 1
	}
}

func (s *sequence) take() string {
	number := s.numbering.FormatNumber(s.next)
	s.next++
	return number
}
