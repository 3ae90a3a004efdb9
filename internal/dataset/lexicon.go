package dataset

import "strings"

// Token indices reserved ahead of the lexicon.
const (
	PadIndex  = 0
	StopIndex = 1
)

const (
	padToken  = "[PAD]"
	stopToken = "[STOP]"
)

// DefaultSeqLen is the padded sequence length used by the recognition head.
const DefaultSeqLen = 50

// DecodeMode selects how predicted index sequences are collapsed into text.
type DecodeMode string

const (
	// DecodeCE reads indices verbatim up to the stop token.
	DecodeCE DecodeMode = "CE"
	// DecodeCTC collapses repeated indices and drops blanks before reading.
	DecodeCTC DecodeMode = "CTC"
)

// lexicon95 is the printable ASCII lexicon used for cell transcripts:
// '!' through '~' plus space, 95 characters total.
func lexicon95() []string {
	chars := make([]string, 0, 95)
	for c := '!'; c <= '~'; c++ {
		chars = append(chars, string(c))
	}
	return append(chars, " ")
}

// LabelConverter maps between transcripts and fixed-length index sequences.
type LabelConverter struct {
	seqLen    int
	mode      DecodeMode
	idxToChar []string
	charToIdx map[string]int
}

// NewLabelConverter builds a converter over the default 95-character lexicon.
// seqLen <= 0 falls back to DefaultSeqLen.
func NewLabelConverter(seqLen int, mode DecodeMode) *LabelConverter {
	if seqLen <= 0 {
		seqLen = DefaultSeqLen
	}
	if mode == "" {
		mode = DecodeCE
	}

	idxToChar := append([]string{padToken, stopToken}, lexicon95()...)
	charToIdx := make(map[string]int, len(idxToChar))
	for i, ch := range idxToChar {
		charToIdx[ch] = i
	}

	return &LabelConverter{
		seqLen:    seqLen,
		mode:      mode,
		idxToChar: idxToChar,
		charToIdx: charToIdx,
	}
}

// SeqLen returns the padded sequence length.
func (c *LabelConverter) SeqLen() int {
	return c.seqLen
}

// Encode converts a transcript into a fixed-length index sequence. The text
// is upper-cased, characters outside the lexicon are dropped, a stop token is
// appended, and the result is padded or truncated to the sequence length.
// ignore empties the transcript so only the stop token is encoded.
func (c *LabelConverter) Encode(text string, ignore bool) []int {
	if ignore {
		text = ""
	}
	text = strings.ToUpper(text)

	idx := make([]int, 0, len(text)+1)
	for _, r := range text {
		if i, ok := c.charToIdx[string(r)]; ok {
			idx = append(idx, i)
		}
	}
	idx = append(idx, StopIndex)

	out := make([]int, c.seqLen)
	if len(idx) > c.seqLen {
		copy(out, idx[:c.seqLen])
	} else {
		copy(out, idx)
	}
	return out
}

// Decode converts an index sequence back into a transcript, cutting at the
// first stop token. In CTC mode repeated indices and blanks are collapsed
// first.
func (c *LabelConverter) Decode(idx []int) string {
	if c.mode == DecodeCTC {
		collapsed := make([]int, 0, len(idx))
		for i, t := range idx {
			if t != PadIndex && (i == 0 || t != idx[i-1]) {
				collapsed = append(collapsed, t)
			}
		}
		idx = collapsed
	}

	var b strings.Builder
	for _, t := range idx {
		if t == StopIndex {
			break
		}
		if c.mode == DecodeCE && t == PadIndex {
			b.WriteString(padToken)
			continue
		}
		if t >= 0 && t < len(c.idxToChar) {
			b.WriteString(c.idxToChar[t])
		}
	}
	return b.String()
}
