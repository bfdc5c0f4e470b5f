package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content digests.
// Version suffix enables future algorithm migration.
const (
	DomainCapture  = "termfixture/capture/v1"
	DomainScenario = "termfixture/scenario/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte (0x00) separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// CaptureDigest identifies one expected output pair.
// Two captures have the same digest iff both plain and ansi are byte-identical.
func CaptureDigest(plain, ansi string) (string, error) {
	canonical, err := MarshalCompact(IRRecord{
		F("plain", IRString(plain)),
		F("ansi", IRString(ansi)),
	})
	if err != nil {
		return "", fmt.Errorf("CaptureDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainCapture, canonical), nil
}

// ScenarioDigest identifies a scenario's replayable inputs: everything a
// consumer feeds back into its renderer. A changed digest with an unchanged
// id means the scenario itself was edited.
func ScenarioDigest(descriptor IRValue) (string, error) {
	canonical, err := MarshalCompact(descriptor)
	if err != nil {
		return "", fmt.Errorf("ScenarioDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainScenario, canonical), nil
}
