package logging

import (
	"errors"

	"github.com/openballot/electionbot/src/election"
	"github.com/openballot/electionbot/src/ledger"
)

// IsDecode reports whether a read failed on a corrupt or malformed ledger
// record rather than on transport.
func IsDecode(err error) bool {
	var decodeErr *ledger.DecodeError
	var schemaErr *ledger.SchemaError
	return errors.As(err, &decodeErr) || errors.As(err, &schemaErr)
}

// IsNotFound reports whether a lookup referenced an election id with no
// created record.
func IsNotFound(err error) bool {
	return errors.Is(err, election.ErrNotFound)
}
