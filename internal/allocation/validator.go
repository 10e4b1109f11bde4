package allocation

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Validation error codes, stable across the API boundary.
const (
	CodeEmptyShareSet    = "empty_share_set"
	CodeUnknownHeir      = "unknown_heir"
	CodeNegativeShare    = "negative_share"
	CodeDuplicateHeir    = "duplicate_heir_in_shares"
	CodeShareSumMismatch = "share_sum_mismatch"
)

// Tolerance on the per-asset share sum, in percent.
var Epsilon = decimal.New(1, -6)

var hundred = decimal.NewFromInt(100)

// ShareInput is one proposed (heir, percentage) pair for a single asset.
type ShareInput struct {
	HeirID              uuid.UUID
	ShareOfDistribution decimal.Decimal
	DistributionType    string
}

// ValidationError reports why a proposed share set was rejected. HeirID is
// set for per-share failures, Actual for sum mismatches.
type ValidationError struct {
	Code   string
	HeirID uuid.UUID
	Actual decimal.Decimal
}

func (e *ValidationError) Error() string {
	switch e.Code {
	case CodeEmptyShareSet:
		return "share set is empty"
	case CodeUnknownHeir:
		return fmt.Sprintf("unknown heir %s", e.HeirID)
	case CodeNegativeShare:
		return fmt.Sprintf("negative share for heir %s", e.HeirID)
	case CodeDuplicateHeir:
		return fmt.Sprintf("heir %s appears more than once", e.HeirID)
	case CodeShareSumMismatch:
		return fmt.Sprintf("shares sum to %s, want 100", e.Actual)
	}
	return e.Code
}

// Validate checks a proposed share set against the set of known heirs. It is
// pure and order-independent. Duplicate heir entries are rejected rather than
// merged: a duplicate almost always means a client bug, and summing them
// would mask it.
func Validate(shares []ShareInput, knownHeirs map[uuid.UUID]struct{}) error {
	if len(shares) == 0 {
		return &ValidationError{Code: CodeEmptyShareSet}
	}
	seen := make(map[uuid.UUID]struct{}, len(shares))
	sum := decimal.Zero
	for _, s := range shares {
		if _, dup := seen[s.HeirID]; dup {
			return &ValidationError{Code: CodeDuplicateHeir, HeirID: s.HeirID}
		}
		seen[s.HeirID] = struct{}{}
		if _, ok := knownHeirs[s.HeirID]; !ok {
			return &ValidationError{Code: CodeUnknownHeir, HeirID: s.HeirID}
		}
		if s.ShareOfDistribution.IsNegative() {
			return &ValidationError{Code: CodeNegativeShare, HeirID: s.HeirID}
		}
		sum = sum.Add(s.ShareOfDistribution)
	}
	if sum.Sub(hundred).Abs().GreaterThan(Epsilon) {
		return &ValidationError{Code: CodeShareSumMismatch, Actual: sum}
	}
	return nil
}
