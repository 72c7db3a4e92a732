// Package credsdoc maintains the human-readable document that records the
// generated super-admin credentials. The pair lives inside a delimited block
// so repeated bootstraps replace it in place without touching the rest of the
// document. This is deliberately isolated from the credential store: a failure
// here must never affect core persistence.
package credsdoc

import (
	"fmt"
	"os"
	"strings"
)

const (
	markerStart = "<!-- SUPER_ADMIN_CREDENTIALS_START -->"
	markerEnd   = "<!-- SUPER_ADMIN_CREDENTIALS_END -->"

	defaultHeader = "# FutTest\n\n## Super admin credentials\n\nThe super admin is created on first server start.\n"
)

// Upsert writes the login/password pair into the document at path. An existing
// delimited block is replaced in place; otherwise a new block is appended. A
// missing document is created with a minimal header first.
func Upsert(path, login, password string) error {
	block := fmt.Sprintf("%s\n- Login: %s\n- Password: %s\n%s", markerStart, login, password, markerEnd)

	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read credentials document: %w", err)
		}
		raw = []byte(defaultHeader)
	}
	content := string(raw)

	updated, ok := replaceBlock(content, block)
	if !ok {
		updated = strings.TrimRight(content, "\n") + "\n\n## Super Admin (created on first start)\n" + block + "\n"
	}

	if err := os.WriteFile(path, []byte(updated), 0o600); err != nil {
		return fmt.Errorf("write credentials document: %w", err)
	}
	return nil
}

// replaceBlock swaps the span between the start and end markers (inclusive)
// for block. Reports false when either marker is absent or out of order.
func replaceBlock(content, block string) (string, bool) {
	start := strings.Index(content, markerStart)
	if start < 0 {
		return content, false
	}
	end := strings.Index(content[start:], markerEnd)
	if end < 0 {
		return content, false
	}
	end += start + len(markerEnd)
	return content[:start] + block + content[end:], true
}
