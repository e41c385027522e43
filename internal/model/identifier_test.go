package model_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestIdentifierIsValid(t *testing.T) {
	if model.InvalidIdentifier.IsValid(8) {
		t.Fatal("InvalidIdentifier.IsValid() = true, want false")
	}
	if !model.Identifier(1).IsValid(8) {
		t.Fatal("Identifier(1).IsValid(8) = false, want true")
	}
	if !model.Identifier(8).IsValid(8) {
		t.Fatal("Identifier(8).IsValid(8) = false, want true")
	}
	if model.Identifier(9).IsValid(8) {
		t.Fatal("Identifier(9).IsValid(8) = true, want false")
	}
}

func TestValidateIdentifier(t *testing.T) {
	if err := model.ValidateIdentifier(0, 8, "zoneID"); model.KindOf(err) != model.KindOutOfRange {
		t.Fatalf("ValidateIdentifier(0): got err %v, want OutOfRange", err)
	}
	if err := model.ValidateIdentifier(4, 8, "zoneID"); err != nil {
		t.Fatalf("ValidateIdentifier(4): unexpected err %v", err)
	}
}

func TestDefaultLimits(t *testing.T) {
	l := model.DefaultLimits()
	if l.SourcesMax != 8 || l.ZonesMax != 32 || l.GroupsMax != 32 || l.FavoritesMax != 48 ||
		l.EqualizerPresetsMax != 8 || l.EqualizerBandsMax != 10 {
		t.Fatalf("DefaultLimits() = %+v, unexpected values", l)
	}
}
