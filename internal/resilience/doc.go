// Package resilience provides fault tolerance for calls to the news search API.
//
// The circuitbreaker subpackage wraps github.com/sony/gobreaker. Retries are
// deliberately absent: a failed search is reported to the caller as is.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.NewsAPIConfig())
//	resp, err := circuitbreaker.Do(cb, func() (*http.Response, error) {
//	    return client.Do(req)
//	})
package resilience
