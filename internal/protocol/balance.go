package protocol

import (
	"fmt"

	"github.com/openhlxgo/hlx/internal/model"
)

// EncodeBalance converts a continuous model bias in [-80, 80] to the
// wire's tagged, discontinuous form: "L<n>" for negative bias, "R<n>"
// for non-negative bias (spec.md §4.1's "balance normalization"). Zero
// is emitted as "R0" — either tag decodes to zero, so the choice is the
// codec's to make (spec.md §8: "encode(0) is L0 or R0 at the codec's
// discretion").
func EncodeBalance(bias int) string {
	if bias < 0 {
		return fmt.Sprintf("L%d", -bias)
	}
	return fmt.Sprintf("R%d", bias)
}

// DecodeBalance parses the wire's tagged balance form back to a
// continuous model bias. tag is either 'L' or 'R'; magnitude is the
// unsigned distance from center, expected in [0, 80].
func DecodeBalance(tag byte, magnitude int) (int, error) {
	if magnitude < 0 || magnitude > model.BalanceMax {
		return 0, model.ErrOutOfRange("balance")
	}
	switch tag {
	case 'L':
		return -magnitude, nil
	case 'R':
		return magnitude, nil
	default:
		return 0, model.NewError(model.KindMalformed, "balance tag must be L or R")
	}
}
