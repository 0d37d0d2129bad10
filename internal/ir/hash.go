package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content digests.
// The version suffix leaves room for a future algorithm change.
const (
	DomainReference  = "harvest/reference/v1"
	DomainReferences = "harvest/references/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ReferenceDigest returns the content digest of one reference sequence.
// The sequence bytes are hashed directly so large genomes are never
// re-encoded as JSON.
func ReferenceDigest(ref Reference) (string, error) {
	seqSum := sha256.Sum256([]byte(ref.Sequence))
	obj := map[string]any{
		"name":        ref.Name,
		"description": ref.Description,
		"length":      ref.Len(),
		"sequence":    hex.EncodeToString(seqSum[:]),
	}
	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ReferenceDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainReference, canonical), nil
}

// ReferencesDigest returns the digest of an ordered reference set.
// Order is significant because it defines the concatenated coordinate space.
func ReferencesDigest(refs []Reference) (string, error) {
	digests := make([]any, len(refs))
	for i, ref := range refs {
		d, err := ReferenceDigest(ref)
		if err != nil {
			return "", fmt.Errorf("reference %d: %w", i, err)
		}
		digests[i] = d
	}
	canonical, err := MarshalCanonical(digests)
	if err != nil {
		return "", fmt.Errorf("ReferencesDigest: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainReferences, canonical), nil
}
