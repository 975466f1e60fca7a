// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"github.com/pkg/errors"

	"github.com/xode-network/xode-staking/storage"
)

// Kind classifies the invariant an Error reports.
type Kind int

const (
	KindCapacityExceeded Kind = iota + 1
	KindDuplicateEntry
	KindNotFound
	KindCodecFailure
	KindBadOrigin
)

func (k Kind) String() string {
	switch k {
	case KindCapacityExceeded:
		return "CapacityExceeded"
	case KindDuplicateEntry:
		return "DuplicateEntry"
	case KindNotFound:
		return "NotFound"
	case KindCodecFailure:
		return "CodecFailure"
	case KindBadOrigin:
		return "BadOrigin"
	}
	return "Unknown"
}

// Error is a rejection of a single operation, naming the violated invariant.
// Errors are sentinels, compared by identity.
type Error struct {
	Kind Kind
	Name string
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

var (
	ErrCandidateAlreadyExist = &Error{KindDuplicateEntry, "CandidateAlreadyExist", "candidate already exists"}
	ErrExceedsMaxCandidates  = &Error{KindCapacityExceeded, "ExceedsMaxCandidates", "exceeds max candidates"}
	ErrCandidateDoesNotExist = &Error{KindNotFound, "CandidateDoesNotExist", "candidate does not exist"}
	ErrAuthorityAlreadyExist = &Error{KindDuplicateEntry, "AuthorityAlreadyExist", "authority already exists"}
	ErrExceedsMaxAuthorities = &Error{KindCapacityExceeded, "ExceedsMaxAuthorities", "exceeds max authorities"}
	ErrAuthorityDoesNotExist = &Error{KindNotFound, "AuthorityDoesNotExist", "authority does not exist"}
	ErrCollatorAlreadyExist  = &Error{KindDuplicateEntry, "CollatorAlreadyExist", "collator already exists"}
	ErrExceedsMaxCollators   = &Error{KindCapacityExceeded, "ExceedsMaxCollators", "exceeds max collators"}
	ErrCollatorDoesNotExist  = &Error{KindNotFound, "CollatorDoesNotExist", "collator does not exist"}
	ErrCodecFailure          = &Error{KindCodecFailure, "CodecFailure", "identifier conversion failed"}
	ErrBadOrigin             = &Error{KindBadOrigin, "BadOrigin", "bad origin"}

	// rejections of the stake/unstake calls
	ErrStakeDuplicate = &Error{KindDuplicateEntry, "Other", "Candidate already exists"}
	ErrStakeFull      = &Error{KindCapacityExceeded, "Other", "Max candidates reached"}
	ErrUnstakeMissing = &Error{KindNotFound, "Other", "Candidate does not exist"}
)

// IsKind reports whether err is, or wraps, an Error of the kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// registryError translates storage rejections into module errors.
// Other errors, such as storage failures, are returned as is.
func registryError(err error, duplicate, full, missing *Error) error {
	switch {
	case duplicate != nil && errors.Is(err, storage.ErrDuplicate):
		return duplicate
	case full != nil && errors.Is(err, storage.ErrFull):
		return full
	case missing != nil && errors.Is(err, storage.ErrNotFound):
		return missing
	}
	return err
}

func codecError(err error) error {
	return errors.WithMessage(ErrCodecFailure, err.Error())
}
