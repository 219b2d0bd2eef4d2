// internal/segstore/alloc_test.go
package segstore

import "testing"

func TestAllocator_Charge_TracksUsageByComponent(t *testing.T) {
	a := newAllocator(0)

	if err := a.charge(componentSegment, 64); err != nil {
		t.Fatalf("charge: %v", err)
	}
	if err := a.charge(componentVersionNode, 32); err != nil {
		t.Fatalf("charge: %v", err)
	}

	if got := a.usageOf(componentSegment); got != 64 {
		t.Errorf("segment usage = %d, want 64", got)
	}
	if got := a.usageOf(componentVersionNode); got != 32 {
		t.Errorf("version-node usage = %d, want 32", got)
	}
}

func TestAllocator_Charge_UnlimitedNeverFails(t *testing.T) {
	a := newAllocator(0)

	if err := a.charge(componentSegment, 1<<40); err != nil {
		t.Errorf("a zero limit should never reject a charge, got %v", err)
	}
}

func TestAllocator_Charge_OverLimitFails(t *testing.T) {
	a := newAllocator(100)

	if err := a.charge(componentSegment, 60); err != nil {
		t.Fatalf("first charge: %v", err)
	}
	if err := a.charge(componentSegment, 60); err != ErrOutOfMemory {
		t.Errorf("second charge: got %v, want ErrOutOfMemory", err)
	}
}

func TestAllocator_Release_ReturnsBudget(t *testing.T) {
	a := newAllocator(100)

	if err := a.charge(componentSegment, 100); err != nil {
		t.Fatalf("charge: %v", err)
	}
	a.release(componentSegment, 40)

	if err := a.charge(componentSegment, 40); err != nil {
		t.Errorf("charge after release: %v", err)
	}
}

func TestAllocator_FailNextCharge_IsOneShot(t *testing.T) {
	a := newAllocator(0)
	a.failNextCharge()

	if err := a.charge(componentSegment, 1); err != ErrOutOfMemory {
		t.Fatalf("first charge after arming: got %v, want ErrOutOfMemory", err)
	}
	if err := a.charge(componentSegment, 1); err != nil {
		t.Errorf("second charge should succeed, got %v", err)
	}
}
