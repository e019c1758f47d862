// Package toll implements the toll server: the wire protocol, the
// per-connection transaction handler, the accept loop, the periodic stats
// reporter and the service lifecycle that ties them together.
package toll

import (
	"errors"
	"strconv"
	"strings"
)

// Kind is a normalized transaction type.
type Kind string

const (
	KindEntry Kind = "ENTRY"
	KindExit  Kind = "EXIT"
)

var (
	ErrInvalidFormat          = errors.New("toll: invalid message format")
	ErrInvalidTollPoint       = errors.New("toll: invalid toll point")
	ErrUnknownTransactionType = errors.New("toll: unknown transaction type")
)

// Transaction is one booth-submitted ENTRY or EXIT event. It lives only for
// the duration of one request.
type Transaction struct {
	Kind  Kind
	Plate string
	Point int
}

// ParseTransaction decodes one "TYPE,PLATE,POINT" request line. Validation
// order: field count, toll point, transaction type. The plate is an opaque
// token and is not validated further.
func ParseTransaction(raw string) (Transaction, error) {
	parts := strings.Split(raw, ",")
	if len(parts) != 3 {
		return Transaction{}, ErrInvalidFormat
	}

	point, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return Transaction{}, ErrInvalidTollPoint
	}

	kind := Kind(strings.ToUpper(strings.TrimSpace(parts[0])))
	if kind != KindEntry && kind != KindExit {
		return Transaction{}, ErrUnknownTransactionType
	}

	return Transaction{Kind: kind, Plate: parts[1], Point: point}, nil
}
