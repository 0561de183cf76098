//go:build windows

package probe

import (
	"context"
	"fmt"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

// Win32_Service mirrors the WMI class of the same name.
type Win32_Service struct {
	Name  string
	State string
}

// Service queries WMI for the named service.
func (*Host) Service(_ context.Context, name string) (bool, string, error) {
	// Single quotes are the only metacharacter in a WQL string literal.
	escaped := strings.ReplaceAll(name, "'", "''")
	query := fmt.Sprintf("SELECT Name, State FROM Win32_Service WHERE Name = '%s'", escaped)

	var services []Win32_Service
	if err := wmi.Query(query, &services); err != nil {
		return false, "", fmt.Errorf("query Win32_Service for %s: %w", name, err)
	}
	if len(services) == 0 {
		return false, "", nil
	}
	return true, services[0].State, nil
}
