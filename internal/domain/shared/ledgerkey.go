package shared

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Record tags used to derive ledger keys
const (
	TagPaper           = "paper"
	TagReview          = "review"
	TagPurchase        = "purchase"
	TagAuthor          = "author"
	TagUser            = "user"
	TagPlatformConfig  = "paperfi_config"
	TagVault           = "vault"
	TagBadgeCollection = "badge_collection"
)

// KeyPart is one component of a record's natural identity
type KeyPart interface {
	appendKey(dst []byte) []byte
}

// StringPart is a length-prefixed string component
type StringPart string

func (s StringPart) appendKey(dst []byte) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)))
	return append(dst, s...)
}

// Uint64Part is a little-endian integer component
type Uint64Part uint64

func (u Uint64Part) appendKey(dst []byte) []byte {
	return binary.LittleEndian.AppendUint64(dst, uint64(u))
}

// DeriveKey hashes a tag and the ordered identity parts into a hex-encoded
// BLAKE2b-256 digest. The same inputs always yield the same key.
func DeriveKey(tag string, parts ...KeyPart) string {
	buf := make([]byte, 0, 64)
	buf = StringPart(tag).appendKey(buf)
	for _, p := range parts {
		buf = p.appendKey(buf)
	}
	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// UserKey derives the key of a user account
func UserKey(id Identity) string {
	return DeriveKey(TagUser, StringPart(id))
}

// PaperKey derives the key of a paper
func PaperKey(owner Identity, id uint64) string {
	return DeriveKey(TagPaper, StringPart(owner), Uint64Part(id))
}

// ReviewKey derives the key of a review
func ReviewKey(reviewer Identity, paperKey string) string {
	return DeriveKey(TagReview, StringPart(reviewer), StringPart(paperKey))
}

// PurchaseKey derives the key of a purchase record
func PurchaseKey(buyer Identity, paperKey string) string {
	return DeriveKey(TagPurchase, StringPart(buyer), StringPart(paperKey))
}

// AuthorKey derives the key of an author record
func AuthorKey(author Identity, paperKey string) string {
	return DeriveKey(TagAuthor, StringPart(author), StringPart(paperKey))
}

// PlatformConfigKey is the key of the singleton platform configuration
func PlatformConfigKey() string {
	return DeriveKey(TagPlatformConfig)
}

// BadgeCollectionKey derives the key of a badge collection
func BadgeCollectionKey(name string) string {
	return DeriveKey(TagBadgeCollection, StringPart(name))
}

// VaultKey derives the key of a value-holding account
func VaultKey(kind string, owner Identity) string {
	return DeriveKey(TagVault, StringPart(kind), StringPart(owner))
}
