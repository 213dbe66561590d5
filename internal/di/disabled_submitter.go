package di

import (
	"context"
	"errors"

	domain "github.com/attarhouse/storefront/internal/domain"
)

// disabledSubmitter rejects every submission when no collaborator endpoint is
// configured. The draft and cart stay intact, matching the retry contract.
type disabledSubmitter struct{}

func (disabledSubmitter) SubmitOrder(context.Context, domain.OrderDraft) (string, error) {
	return "", errors.New("order submission is not configured")
}
