package model_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestToneSetAtomic(t *testing.T) {
	var tn model.Tone
	if _, err := tn.SetTone(model.ToneMax+1, 0); model.KindOf(err) != model.KindOutOfRange {
		t.Fatalf("SetTone with bad bass: got err %v, want OutOfRange", err)
	}
	if _, err := tn.Bass(); err == nil {
		t.Fatal("bass should remain uninitialized after rejected SetTone")
	}

	if _, err := tn.SetTone(0, model.ToneMin-1); model.KindOf(err) != model.KindOutOfRange {
		t.Fatalf("SetTone with bad treble: got err %v, want OutOfRange", err)
	}
	if _, err := tn.Treble(); err == nil {
		t.Fatal("treble should remain uninitialized after rejected SetTone")
	}

	outcome, err := tn.SetTone(3, -3)
	if err != nil {
		t.Fatalf("SetTone(3, -3): unexpected err %v", err)
	}
	if outcome != model.Changed {
		t.Fatalf("SetTone(3, -3) outcome = %v, want Changed", outcome)
	}
	bass, _ := tn.Bass()
	treble, _ := tn.Treble()
	if bass != 3 || treble != -3 {
		t.Fatalf("Bass/Treble = (%d, %d), want (3, -3)", bass, treble)
	}
}

func TestToneSetToneAlreadySet(t *testing.T) {
	var tn model.Tone
	tn.SetTone(1, 1)
	outcome, err := tn.SetTone(1, 1)
	if err != nil {
		t.Fatalf("repeat SetTone: unexpected err %v", err)
	}
	if outcome != model.AlreadySet {
		t.Fatalf("repeat SetTone(1, 1) outcome = %v, want AlreadySet", outcome)
	}
}
