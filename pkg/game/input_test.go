package game

import "testing"

func TestCommandLatch(t *testing.T) {
	var s commandState
	s.Press(CmdForward)

	held := s.Step(testDT)
	if !held.Has(CmdForward) {
		t.Fatal("command dropped immediately after press")
	}

	for elapsed := testDT; elapsed < cmdLatch+0.1; elapsed += testDT {
		held = s.Step(testDT)
	}
	if held.Has(CmdForward) {
		t.Error("command still held after the latch window")
	}
}

func TestCommandRelease(t *testing.T) {
	var s commandState
	s.Press(CmdForward | CmdFire)
	s.Release(CmdForward)

	held := s.Step(testDT)
	if held.Has(CmdForward) {
		t.Error("released command still held")
	}
	if !held.Has(CmdFire) {
		t.Error("release cleared an unrelated command")
	}
}

func TestCommandBitsIndependent(t *testing.T) {
	var s commandState
	s.Press(CmdTurnLeft)
	s.Press(CmdFire)

	held := s.Step(testDT)
	if !held.Has(CmdTurnLeft) || !held.Has(CmdFire) {
		t.Fatalf("held = %b, want both pressed bits", held)
	}
	if held.Has(CmdForward) || held.Has(CmdReverse) || held.Has(CmdTurnRight) {
		t.Errorf("held = %b includes bits never pressed", held)
	}
}

func TestHasRequiresAllBits(t *testing.T) {
	cmd := CmdForward | CmdFire
	if !cmd.Has(CmdForward) || !cmd.Has(CmdFire) {
		t.Error("Has missed an asserted bit")
	}
	if cmd.Has(CmdForward | CmdReverse) {
		t.Error("Has matched a mask with an unasserted bit")
	}
}
