package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// runtimeVariableHashLength is the number of content-hash bytes encoded
// into generated names.
const runtimeVariableHashLength = 8

// runtimeVariableBuilder derives the hidden identifiers a rule injects
// into rewritten code. Names come from a template holding a `{name}`
// placeholder and optionally a `{hash}` placeholder; the hash is computed
// from the original source bytes plus a rule-specific seed, so identical
// input produces byte-identical names across independent runs, and
// different files or rules never share a generated name by accident.
type runtimeVariableBuilder struct {
	format   string
	hash     string
	reserved map[string]struct{}
}

// newRuntimeVariableBuilder builds a name generator for one rule
// application. Reserved names are never produced: a numeric suffix is
// appended until the candidate is free.
func newRuntimeVariableBuilder(format, seed string, source []byte, reserved ...string) *runtimeVariableBuilder {
	digest := sha256.New()
	digest.Write([]byte(seed))
	digest.Write(source)
	sum := digest.Sum(nil)

	b := &runtimeVariableBuilder{
		format:   format,
		hash:     hex.EncodeToString(sum[:runtimeVariableHashLength]),
		reserved: make(map[string]struct{}, len(reserved)),
	}
	for _, name := range reserved {
		b.reserved[name] = struct{}{}
	}
	return b
}

// Build produces the identifier for the given role name.
func (b *runtimeVariableBuilder) Build(name string) string {
	candidate := strings.ReplaceAll(b.format, "{name}", name)
	candidate = strings.ReplaceAll(candidate, "{hash}", b.hash)
	if _, taken := b.reserved[candidate]; !taken {
		return candidate
	}
	base := candidate
	for i := 2; ; i++ {
		candidate = base + strconv.Itoa(i)
		if _, taken := b.reserved[candidate]; !taken {
			return candidate
		}
	}
}

// validateRuntimeVariableFormat rejects templates that cannot produce
// distinct names. Checked at configuration time so rule application never
// fails.
func validateRuntimeVariableFormat(key, format string) error {
	if !strings.Contains(format, "{name}") {
		return fmt.Errorf("invalid value for field '%s': missing '{name}' placeholder", key)
	}
	return nil
}
