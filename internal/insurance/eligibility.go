package insurance

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"
)

type Reason string

const (
	ReasonInvalidID       Reason = "invalid_insurance_id"
	ReasonPolicyNotFound  Reason = "policy_not_found"
	ReasonPatientMismatch Reason = "patient_mismatch"
	ReasonExpiredPolicy   Reason = "expired_policy"
	ReasonInactivePolicy  Reason = "inactive_policy"
	ReasonVerified        Reason = "verified"
)

// ErrVerificationUnavailable is returned after the transient-retry budget for
// the policy source is exhausted.
var ErrVerificationUnavailable = errors.New("insurance verification is temporarily unavailable")

// Member IDs are an uppercase three-letter payer prefix followed by 3 to 9
// digits, e.g. INS456 or ABC123456789.
var insuranceIDPattern = regexp.MustCompile(`^[A-Z]{3}\d{3,9}$`)

func ValidInsuranceID(insuranceID string) bool {
	return insuranceIDPattern.MatchString(insuranceID)
}

// Result is the outcome of an eligibility check. Policy is set whenever the
// lookup found a record, even if the check failed on a later rule.
type Result struct {
	Eligible bool
	Reason   Reason
	Message  string
	Policy   *Policy
}

const dateLayout = "2006-01-02"

// Checker applies the eligibility rules in a fixed order, first match wins:
// ID format, existence, identity match, status, expiration. Only the source
// lookup may fail transiently; everything after it is a pure local check.
type Checker struct {
	source     Source
	maxRetries int
	retryDelay time.Duration
	log        *zap.Logger
}

func NewChecker(source Source, maxRetries int, retryDelay time.Duration, log *zap.Logger) *Checker {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Checker{
		source:     source,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		log:        log,
	}
}

// Check verifies that insuranceID identifies an active policy belonging to
// patientID. serviceDate anchors the expiration rule; a zero serviceDate
// means "today". The returned error is non-nil only when the policy source
// stayed unavailable through all retries.
func (c *Checker) Check(ctx context.Context, patientID, insuranceID string, serviceDate time.Time) (Result, error) {
	if !ValidInsuranceID(insuranceID) {
		return Result{
			Reason:  ReasonInvalidID,
			Message: "Invalid insurance ID format. Use a payer prefix followed by digits, e.g. ABC123456789",
		}, nil
	}

	policy, err := c.lookup(ctx, insuranceID)
	if err != nil {
		if errors.Is(err, ErrPolicyNotFound) {
			return Result{Reason: ReasonPolicyNotFound, Message: "Insurance policy not found"}, nil
		}
		return Result{}, err
	}

	if policy.PatientID != patientID {
		return Result{
			Reason:  ReasonPatientMismatch,
			Message: "Patient ID does not match insurance record",
			Policy:  policy,
		}, nil
	}

	if policy.EligibilityStatus != StatusActive {
		return Result{
			Reason:  ReasonInactivePolicy,
			Message: "Insurance is not active",
			Policy:  policy,
		}, nil
	}

	if expired(policy, serviceDate) {
		return Result{
			Reason:  ReasonExpiredPolicy,
			Message: "Insurance policy has expired",
			Policy:  policy,
		}, nil
	}

	return Result{
		Eligible: true,
		Reason:   ReasonVerified,
		Message:  "Insurance verified successfully",
		Policy:   policy,
	}, nil
}

// lookup retries transient source failures before escalating. Not-found is a
// definitive answer and is never retried.
func (c *Checker) lookup(ctx context.Context, insuranceID string) (*Policy, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		policy, err := c.source.LookupPolicy(ctx, insuranceID)
		if err == nil {
			return policy, nil
		}
		if errors.Is(err, ErrPolicyNotFound) {
			return nil, err
		}
		lastErr = err
		c.log.Warn("policy source lookup failed",
			zap.String("insurance_id", insuranceID),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt < c.maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}
	}
	return nil, fmt.Errorf("%w: %w", ErrVerificationUnavailable, lastErr)
}

func expired(policy *Policy, serviceDate time.Time) bool {
	if policy.Coverage.ExpirationDate == "" {
		return false
	}
	exp, err := time.Parse(dateLayout, policy.Coverage.ExpirationDate)
	if err != nil {
		return false
	}
	ref := serviceDate
	if ref.IsZero() {
		ref = time.Now()
	}
	ref = time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	return exp.Before(ref)
}
