package model_test

import (
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestGroupAddRemoveMember(t *testing.T) {
	g := model.NewGroup(1)
	if !g.IsEmpty() {
		t.Fatal("new group should be empty")
	}

	outcome, err := g.AddMember(3, 32)
	if err != nil {
		t.Fatalf("AddMember: unexpected err %v", err)
	}
	if outcome != model.Changed {
		t.Fatalf("AddMember outcome = %v, want Changed", outcome)
	}
	if outcome, _ := g.AddMember(3, 32); outcome != model.AlreadySet {
		t.Fatalf("repeat AddMember outcome = %v, want AlreadySet", outcome)
	}
	if !g.HasMember(3) {
		t.Fatal("HasMember(3) = false after AddMember")
	}

	if outcome := g.RemoveMember(3); outcome != model.Changed {
		t.Fatalf("RemoveMember outcome = %v, want Changed", outcome)
	}
	if outcome := g.RemoveMember(3); outcome != model.AlreadySet {
		t.Fatalf("repeat RemoveMember outcome = %v, want AlreadySet", outcome)
	}
	if g.HasMember(3) {
		t.Fatal("HasMember(3) = true after RemoveMember")
	}
}

func TestGroupAddMemberOutOfRange(t *testing.T) {
	g := model.NewGroup(1)
	if _, err := g.AddMember(33, 32); model.KindOf(err) != model.KindOutOfRange {
		t.Fatalf("AddMember(33, max=32): got err %v, want OutOfRange", err)
	}
}

func TestGroupMembersSorted(t *testing.T) {
	g := model.NewGroup(1)
	g.AddMember(5, 32)
	g.AddMember(2, 32)
	g.AddMember(9, 32)

	members := g.Members()
	want := []model.Identifier{2, 5, 9}
	if len(members) != len(want) {
		t.Fatalf("Members() = %v, want %v", members, want)
	}
	for i := range want {
		if members[i] != want[i] {
			t.Fatalf("Members() = %v, want %v", members, want)
		}
	}
}
