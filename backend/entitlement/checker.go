package entitlement

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"aicitybuilders/backend/models"
	"aicitybuilders/backend/store"
)

// AccessResult is the outcome of an entitlement check. HasAccess is false
// both for "not paid" and for a store failure; StoreErr tells the two apart
// so the caller can offer a retry instead of a hard denial.
type AccessResult struct {
	HasAccess bool
	StoreErr  error
}

// Checker answers whether a user paid for a course. It only ever reads the
// entitlement table; the checkout process is the sole writer.
type Checker struct {
	store  store.RecordStore
	logger *log.Logger
}

func NewChecker(rs store.RecordStore, logger *log.Logger) *Checker {
	return &Checker{store: rs, logger: logger}
}

// CheckAccess classifies the payment record for (email, courseID). It fails
// closed: any store failure denies access. It never panics and never
// returns an error; everything is folded into the result.
func (ch *Checker) CheckAccess(ctx context.Context, email, courseID string) AccessResult {
	raw, err := ch.store.Get(ctx, models.TableEntitlements, email, courseID)
	if errors.Is(err, store.ErrNotFound) {
		return AccessResult{HasAccess: false}
	}
	if err != nil {
		ch.logger.Printf("Entitlement lookup failed for course %s: %v", courseID, err)
		return AccessResult{HasAccess: false, StoreErr: err}
	}

	var record models.EntitlementRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		ch.logger.Printf("Malformed entitlement record for course %s: %v", courseID, err)
		return AccessResult{HasAccess: false, StoreErr: err}
	}
	return AccessResult{HasAccess: record.IsPaid}
}
