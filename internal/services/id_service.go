package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"appypay-service/internal/repository"
	"appypay-service/pkg/common"
)

const (
	merchantIDMaxAttempts = 100
	referenceMaxAttempts  = 1000
)

// IdService assigns merchant transaction ids and payment references.
// Merchant ids are sequential per prefix; candidates are reserved with
// an insert so concurrent generators fall back to the bounded increment
// loop instead of handing out the same id twice.
type IdService struct {
	Sys repository.SysStore
}

func NewIdService(sys repository.SysStore) *IdService {
	return &IdService{Sys: sys}
}

// GenerateMerchantID returns the next free id of the form
// prefix + 9-digit zero-padded number.
func (s *IdService) GenerateMerchantID(prefix string) (string, error) {
	last, err := s.Sys.MaxMerchantIDWithPrefix(prefix)
	if err != nil {
		return "", err
	}

	next := int64(0)
	if last != "" {
		next, _ = strconv.ParseInt(strings.TrimPrefix(last, prefix), 10, 64)
	}

	for attempt := 0; attempt < merchantIDMaxAttempts; attempt++ {
		next++
		candidate := fmt.Sprintf("%s%09d", prefix, next)

		err := s.Sys.ReserveMerchantID(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, repository.ErrDuplicate) {
			return "", err
		}
	}

	return "", &IdGenerationError{Prefix: prefix, Attempts: merchantIDMaxAttempts}
}

// GenerateReference draws random 9-digit references until one is unused.
// The loop is capped; the keyspace is sparse enough that hitting the cap
// means something is wrong with the store.
func (s *IdService) GenerateReference() (string, error) {
	for attempt := 0; attempt < referenceMaxAttempts; attempt++ {
		reference := common.RandomReference()

		exists, err := s.Sys.ExistsReference(reference)
		if err != nil {
			return "", err
		}
		if !exists {
			return reference, nil
		}
	}

	return "", &IdGenerationError{Prefix: "reference", Attempts: referenceMaxAttempts}
}

// ValidPrefix reports whether a merchant id prefix is two letters.
func ValidPrefix(prefix string) bool {
	if len(prefix) != 2 {
		return false
	}
	for _, r := range prefix {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
