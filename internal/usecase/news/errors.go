// Package news provides the use case for searching newsapi.org articles.
// It builds the search URL, maps raw transport callbacks to outcomes and
// delivers only decisive outcomes to the caller.
package news

import "errors"

// Sentinel errors for news search operations.
var (
	// ErrSearchWindowUndefined indicates that one month before the current time
	// cannot be represented as a search date.
	ErrSearchWindowUndefined = errors.New("search window start date is undefined")

	// ErrServiceClosed indicates the service was closed before a decisive outcome arrived.
	ErrServiceClosed = errors.New("news service closed")

	// ErrIndecisive is returned by Outcome.Result for outcomes that carry neither a value nor an error.
	ErrIndecisive = errors.New("indecisive outcome")
)
