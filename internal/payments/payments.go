// Package payments is the seam to the external payment collaborator. The
// platform never initiates charges; the collaborator runs the charge on its
// side and hands back an opaque confirmation token, which is all we consume.
package payments

import "errors"

var ErrNoConfirmation = errors.New("missing payment confirmation")

type Gateway interface {
	// Verify checks a collaborator-issued confirmation token before the sale
	// is recorded.
	Verify(token string) error
}

// TokenGateway is the production gateway: tokens are opaque, so presence is
// the only check we can make.
type TokenGateway struct{}

func (TokenGateway) Verify(token string) error {
	if token == "" {
		return ErrNoConfirmation
	}
	return nil
}
