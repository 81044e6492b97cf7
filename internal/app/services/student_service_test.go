package services

import (
	"fmt"
	"regexp"
	"testing"
	"time"
)

func TestNewStudentCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(fmt.Sprintf(`^ALU-%d-\d{6}$`, time.Now().Year()))

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code := newStudentCode()
		if !pattern.MatchString(code) {
			t.Fatalf("code %q does not match ALU-YYYY-NNNNNN", code)
		}
		seen[code] = true
	}

	// Collisions are retried at insert time, but 50 draws from a
	// million-wide space repeating would point at a broken generator
	if len(seen) < 45 {
		t.Errorf("only %d distinct codes out of 50", len(seen))
	}
}
