package probe

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"hash/fnv"
	"log"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
)

// HardwareID returns a stable identifier for this machine: the platform
// hardware UUID when available, otherwise a hash of hostname and OS so
// the same machine keeps reporting under the same identity.
func HardwareID(ctx context.Context) string {
	if id, err := host.HostIDWithContext(ctx); err == nil && id != "" {
		return id
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	hash := sha256.Sum256([]byte(hostname + runtime.GOOS))
	id := hex.EncodeToString(hash[:16])
	log.Printf("[WARN] Using fallback hardware ID based on hostname hash: %s", id)
	return id
}

// DeviceNumber derives a stable positive numeric device id from the
// hardware identity, for configs that do not assign one. The same
// machine always maps to the same number.
func DeviceNumber(ctx context.Context) int {
	h := fnv.New32a()
	h.Write([]byte(HardwareID(ctx)))
	n := int(h.Sum32() & 0x7fffffff)
	if n == 0 {
		n = 1
	}
	return n
}
