package scraper

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindExtraction Kind = "extraction"
	KindDiscovery  Kind = "discovery"
	KindFetch      Kind = "fetch"
	KindValidation Kind = "validation"
	KindUnknown    Kind = "unknown"
)

// ExtractionError means a listing node lacks a required element.
type ExtractionError struct {
	Element string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("listing node has no %s element", e.Element)
}

// DiscoveryError wraps any failure while enumerating the brand catalog.
type DiscoveryError struct {
	Step string
	Err  error
}

func (e *DiscoveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("brand discovery failed at %s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("brand discovery failed at %s", e.Step)
}

func (e *DiscoveryError) Unwrap() error {
	return e.Err
}

// FetchError is a failed listing page request. Status is zero for transport
// failures.
type FetchError struct {
	Page   int
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("page %d: status %d from %s", e.Page, e.Status, e.URL)
	}
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError is a requested page count outside [1, Max].
type ValidationError struct {
	Requested int
	Max       int
}

func (e *ValidationError) Error() string {
	if e.Max < 1 {
		return fmt.Sprintf("requested %d pages but no full page is available", e.Requested)
	}
	return fmt.Sprintf("requested %d pages, expected 1 - %d", e.Requested, e.Max)
}

// ErrorKind labels err for logs and metrics.
func ErrorKind(err error) Kind {
	var (
		extractionErr *ExtractionError
		discoveryErr  *DiscoveryError
		fetchErr      *FetchError
		validationErr *ValidationError
	)
	switch {
	case errors.As(err, &extractionErr):
		return KindExtraction
	case errors.As(err, &discoveryErr):
		return KindDiscovery
	case errors.As(err, &fetchErr):
		return KindFetch
	case errors.As(err, &validationErr):
		return KindValidation
	default:
		return KindUnknown
	}
}
