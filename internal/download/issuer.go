package download

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"app/internal/domain/model"
)

const tokenBytes = 32 // 256 bits of entropy per token

// LinkTTL is how long an issued link stays valid.
const LinkTTL = 48 * time.Hour

// ErrPaymentNotCompleted is a contract violation: callers must only issue
// links for orders whose payment has completed.
var ErrPaymentNotCompleted = errors.New("payment not completed")

// Issuer mints download links for paid orders.
type Issuer struct {
	baseURL string
	now     func() time.Time
}

func NewIssuer(baseURL string, now func() time.Time) *Issuer {
	return &Issuer{
		baseURL: strings.TrimRight(baseURL, "/"),
		now:     now,
	}
}

// Issue generates one link per line item plus the grants that back them.
// Tokens come from a CSPRNG; links expire LinkTTL after issuance.
func (i *Issuer) Issue(order model.Order) ([]model.DownloadLink, []Grant, error) {
	if order.PaymentInfo.Status != model.PaymentStatusCompleted {
		return nil, nil, ErrPaymentNotCompleted
	}

	expiresAt := i.now().Add(LinkTTL)

	links := make([]model.DownloadLink, 0, len(order.Items))
	grants := make([]Grant, 0, len(order.Items))
	for _, it := range order.Items {
		token, err := NewToken()
		if err != nil {
			return nil, nil, err
		}
		links = append(links, model.DownloadLink{
			BookID:      it.BookID,
			BookTitle:   it.Title,
			DownloadURL: fmt.Sprintf("%s/api/download/%s", i.baseURL, token),
			ExpiresAt:   expiresAt,
		})
		grants = append(grants, Grant{
			Token:   token,
			OrderID: order.OrderID,
			BookID:  it.BookID,
		})
	}
	return links, grants, nil
}

// NewToken returns a fresh unguessable URL-safe token.
func NewToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
