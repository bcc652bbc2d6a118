package appErrors

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for malformed or out-of-domain parameters.
// Values are never clamped silently.
type ErrInvalidInput struct {
	Field  string
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

func NewInvalidInput(field, reason string) error {
	return &ErrInvalidInput{Field: field, Reason: reason}
}

// ErrNotConfigured means a platform has no entry in the simulator's
// configuration table. It is a configuration defect, not a user error.
type ErrNotConfigured struct {
	Platform string
}

func (e *ErrNotConfigured) Error() string {
	return fmt.Sprintf("platform %q is not configured", e.Platform)
}

func NewNotConfigured(platform string) error {
	return &ErrNotConfigured{Platform: platform}
}

type ErrAdNotFound struct {
	AdID int
}

func (e *ErrAdNotFound) Error() string {
	return fmt.Sprintf("ad with ID %d not found", e.AdID)
}

func NewAdNotFound(id int) error {
	return &ErrAdNotFound{AdID: id}
}

// ErrPaymentNotFound carries either the payment ID or the gateway reference
// used for the lookup.
type ErrPaymentNotFound struct {
	Ref string
}

func (e *ErrPaymentNotFound) Error() string {
	return fmt.Sprintf("payment %s not found", e.Ref)
}

func NewPaymentNotFound(ref string) error {
	return &ErrPaymentNotFound{Ref: ref}
}

type ErrBusinessNotFound struct {
	BusinessID int
}

func (e *ErrBusinessNotFound) Error() string {
	return fmt.Sprintf("business with ID %d not found", e.BusinessID)
}

func NewBusinessNotFound(id int) error {
	return &ErrBusinessNotFound{BusinessID: id}
}

type ErrAlreadyPublished struct {
	AdID int
}

func (e *ErrAlreadyPublished) Error() string {
	return fmt.Sprintf("ad %d is already published", e.AdID)
}

func NewAlreadyPublished(id int) error {
	return &ErrAlreadyPublished{AdID: id}
}

type ErrPaymentAlreadyCompleted struct {
	PaymentID int
}

func (e *ErrPaymentAlreadyCompleted) Error() string {
	return fmt.Sprintf("payment %d is already completed", e.PaymentID)
}

func NewPaymentAlreadyCompleted(id int) error {
	return &ErrPaymentAlreadyCompleted{PaymentID: id}
}

type ErrAdNotPaid struct {
	AdID int
}

func (e *ErrAdNotPaid) Error() string {
	return fmt.Sprintf("ad %d has not been paid for", e.AdID)
}

func NewAdNotPaid(id int) error {
	return &ErrAdNotPaid{AdID: id}
}

func IsInvalidInput(err error) bool {
	var target *ErrInvalidInput
	return errors.As(err, &target)
}

func IsNotConfigured(err error) bool {
	var target *ErrNotConfigured
	return errors.As(err, &target)
}

// IsNotFound reports whether err is any of the lookup failures.
func IsNotFound(err error) bool {
	var ad *ErrAdNotFound
	var payment *ErrPaymentNotFound
	var business *ErrBusinessNotFound
	return errors.As(err, &ad) || errors.As(err, &payment) || errors.As(err, &business)
}

// IsConflict reports whether err describes a repeated one-shot transition.
func IsConflict(err error) bool {
	var published *ErrAlreadyPublished
	var completed *ErrPaymentAlreadyCompleted
	return errors.As(err, &published) || errors.As(err, &completed)
}

func IsAdNotPaid(err error) bool {
	var target *ErrAdNotPaid
	return errors.As(err, &target)
}
