package model

import "encoding/json"

// Balance bounds. -80 is fully left, +80 is fully right, 0 is center.
// The in-memory model uses this continuous, non-tagged representation;
// the wire uses a tagged L<n>/R<n> form translated by the protocol codec
// (spec.md §4.1), never here — the model never sees an "L"/"R" tag.
const (
	BalanceMin    = -80
	BalanceMax    = 80
	BalanceCenter = 0
)

// Balance is the embedded stereo balance bias. Grounded in
// original_source's BalanceModel.{hpp,cpp} (kBalanceMin/kBalanceMax/
// kBalanceCenter constants, continuous internal representation).
type Balance struct {
	bias Nullable[int]
}

// Bias returns the current balance, or ErrNotInitialized.
func (b Balance) Bias() (int, error) { return b.bias.Get() }

// SetBias sets the balance. Fails with OutOfRange outside [-80, 80].
func (b *Balance) SetBias(bias int) (SetOutcome, error) {
	if bias < BalanceMin || bias > BalanceMax {
		return 0, ErrOutOfRange("bias")
	}
	return b.bias.Set(bias), nil
}

// IncreaseLeft shifts the balance toward left by delta (delta >= 0),
// clamping at BalanceMin. Mirrors original_source's IncreaseBalanceLeft.
func (b *Balance) IncreaseLeft(delta int) (SetOutcome, int, error) {
	cur, err := b.bias.Get()
	if err != nil {
		cur = BalanceCenter
	}
	next := cur - delta
	if next < BalanceMin {
		next = BalanceMin
	}
	outcome, err := b.SetBias(next)
	return outcome, next, err
}

func (b Balance) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Bias Nullable[int] `json:"bias"`
	}{Bias: b.bias})
}

func (b *Balance) UnmarshalJSON(data []byte) error {
	var w struct {
		Bias Nullable[int] `json:"bias"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	b.bias = w.Bias
	return nil
}

// IncreaseRight shifts the balance toward right by delta (delta >= 0),
// clamping at BalanceMax.
func (b *Balance) IncreaseRight(delta int) (SetOutcome, int, error) {
	cur, err := b.bias.Get()
	if err != nil {
		cur = BalanceCenter
	}
	next := cur + delta
	if next > BalanceMax {
		next = BalanceMax
	}
	outcome, err := b.SetBias(next)
	return outcome, next, err
}
