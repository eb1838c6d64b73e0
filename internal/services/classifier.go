package services

import (
	"net/http"

	"appypay-service/internal/gateway"
)

// Gateway status codes embedded in the charge response.
const (
	codeAccepted            = 101
	codeDuplicateMerchantID = 726
	codeDuplicateReference  = 763
)

// Retry reasons reported by the classifier.
const (
	ReasonMerchantDuplicated  = "merchant_duplicated"
	ReasonReferenceDuplicated = "reference_duplicated"
)

// duplicateSubLimit caps retries per duplicate cause.
const duplicateSubLimit = 3

type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRetry
	OutcomeError
)

// Classification is the verdict on one charge response.
type Classification struct {
	Kind    OutcomeKind
	Reason  string
	Code    int
	Message string
}

// Classifier inspects a charge response and decides between success,
// retry with a mutated payload, and terminal error. It is pure except
// for the id/reference regeneration on the retry paths.
type Classifier struct {
	IDs    *IdService
	Prefix string
}

// Classify applies the classification rules in order. dupID and dupRef
// count how many retries each duplicate cause has already consumed; once
// a cause reaches its sub-limit the verdict turns terminal. On a retry
// verdict the payload has already been mutated with a fresh id or
// reference.
func (c *Classifier) Classify(payload *gateway.ChargePayload, resp *gateway.ChargeResponse, dupID, dupRef int) (*Classification, error) {
	status := resp.ResponseStatus

	accepted := resp.HTTPStatus == http.StatusOK || resp.HTTPStatus == http.StatusAccepted
	if accepted && (status.Successful || status.Code == codeAccepted) {
		return &Classification{Kind: OutcomeSuccess}, nil
	}

	if resp.HTTPStatus == http.StatusBadRequest && status.Code == codeDuplicateMerchantID {
		if dupID >= duplicateSubLimit {
			return &Classification{
				Kind:    OutcomeError,
				Code:    codeDuplicateMerchantID,
				Message: "max attempts reached for merchantTransactionId",
			}, nil
		}

		merchantID, err := c.IDs.GenerateMerchantID(c.Prefix)
		if err != nil {
			return nil, err
		}
		payload.MerchantTransactionID = merchantID

		return &Classification{
			Kind:   OutcomeRetry,
			Reason: ReasonMerchantDuplicated,
			Code:   codeDuplicateMerchantID,
		}, nil
	}

	if resp.HTTPStatus == http.StatusBadRequest && status.Code == codeDuplicateReference {
		if dupRef >= duplicateSubLimit {
			return &Classification{
				Kind:    OutcomeError,
				Code:    codeDuplicateReference,
				Message: "max attempts reached for reference",
			}, nil
		}

		reference, err := c.IDs.GenerateReference()
		if err != nil {
			return nil, err
		}
		payload.PaymentInfo.ReferenceNumber = reference

		return &Classification{
			Kind:   OutcomeRetry,
			Reason: ReasonReferenceDuplicated,
			Code:   codeDuplicateReference,
		}, nil
	}

	message := status.Message
	if message == "" {
		message = "unknown error"
	}
	return &Classification{
		Kind:    OutcomeError,
		Code:    status.Code,
		Message: message,
	}, nil
}
