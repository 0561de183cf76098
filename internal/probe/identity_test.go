package probe

import (
	"context"
	"testing"
)

func TestHardwareIDStable(t *testing.T) {
	ctx := context.Background()
	first := HardwareID(ctx)
	if first == "" {
		t.Fatal("HardwareID must always produce an identity")
	}
	if second := HardwareID(ctx); second != first {
		t.Errorf("HardwareID not stable: %q then %q", first, second)
	}
}

func TestDeviceNumberStableAndPositive(t *testing.T) {
	ctx := context.Background()
	first := DeviceNumber(ctx)
	if first <= 0 {
		t.Fatalf("DeviceNumber = %d, want positive", first)
	}
	if second := DeviceNumber(ctx); second != first {
		t.Errorf("DeviceNumber not stable: %d then %d", first, second)
	}
}
