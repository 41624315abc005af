package dbx

import (
	"strings"

	"github.com/google/uuid"
)

// IsCanonicalUUID reports whether id is a UUID in the plain hyphenated form.
// uuid.Parse also takes braces, urn:uuid: and bare hex, which the stores
// either reject or never match.
func IsCanonicalUUID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.String() == strings.ToLower(id)
}
