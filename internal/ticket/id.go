package ticket

import (
	"crypto/rand"
	"encoding/base32"
)

// idEncoding is unpadded and upper-case; ticket ids end up on printed
// tickets and get read aloud at the door.
var idEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewTicketID mints an opaque ticket identifier: "TCK-" plus 80 random
// bits, base32. Collisions are negligible; the unique index on ticket_id
// is the backstop.
func NewTicketID() string {
	var b [10]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand never fails on supported platforms.
		panic(err)
	}
	return "TCK-" + idEncoding.EncodeToString(b[:])
}
