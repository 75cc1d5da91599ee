package wakeonlan

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ParsePort reads a user supplied port. Empty or non-numeric input yields
// DefaultPort; numbers outside 0-65535 are an error. Zero maps to DefaultPort.
func ParsePort(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultPort, nil
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fmt.Errorf("port %s out of range (must be 1-65535)", s)
		}
		return DefaultPort, nil
	}

	if n < 0 || n > 65535 {
		return 0, fmt.Errorf("port %d out of range (must be 1-65535)", n)
	}
	if n == 0 {
		return DefaultPort, nil
	}

	return uint16(n), nil
}
