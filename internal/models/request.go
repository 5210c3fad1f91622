// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// RequestType classifies an investor request submitted through the portal.
type RequestType string

const (
	RequestTypeBuy             RequestType = "buy"
	RequestTypeSell            RequestType = "sell"
	RequestTypePartnership     RequestType = "partnership"
	RequestTypeBoardNomination RequestType = "board_nomination"
	RequestTypeFeedback        RequestType = "feedback"
)

// ValidRequestType reports whether t is one of the known request types.
func ValidRequestType(t RequestType) bool {
	switch t {
	case RequestTypeBuy, RequestTypeSell, RequestTypePartnership,
		RequestTypeBoardNomination, RequestTypeFeedback:
		return true
	}
	return false
}

// RequestStatus tracks an investor request through triage.
type RequestStatus string

const (
	RequestStatusNew      RequestStatus = "new"
	RequestStatusInReview RequestStatus = "in_review"
	RequestStatusClosed   RequestStatus = "closed"
)

// ValidRequestStatus reports whether s is one of the known statuses.
func ValidRequestStatus(s RequestStatus) bool {
	switch s {
	case RequestStatusNew, RequestStatusInReview, RequestStatusClosed:
		return true
	}
	return false
}

// InvestorRequest is a message submitted by a (prospective) investor:
// a buy/sell interest, partnership proposal, board nomination, or feedback.
type InvestorRequest struct {
	ID        uuid.UUID     `json:"id"`
	Type      RequestType   `json:"type"`
	FullName  string        `json:"fullName"`
	Email     string        `json:"email"`
	Phone     *string       `json:"phone"`
	Message   string        `json:"message"`
	Status    RequestStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}
