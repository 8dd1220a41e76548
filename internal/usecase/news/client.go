package news

import (
	"net/http"
	"net/url"
)

// HTTPClient issues GET requests and reports what happened through handle.
//
// Implementations may call handle on any goroutine. The production transport
// calls it exactly once per request; test doubles may call it more often.
type HTTPClient interface {
	Get(req *http.Request, handle func(RawResponse))
}

// RawResponse is what a transport hands back before any interpretation.
// A nil Body means no body was received; a nil Meta means no response metadata.
type RawResponse struct {
	Body []byte
	Meta ResponseMeta
	Err  error
}

// ResponseMeta describes the response a transport received.
type ResponseMeta interface {
	ResponseURL() *url.URL
}

// HTTPResponseMeta is metadata of an HTTP response.
type HTTPResponseMeta struct {
	URL        *url.URL
	StatusCode int
	Header     http.Header
}

// ResponseURL returns the URL the response was received from.
func (m *HTTPResponseMeta) ResponseURL() *url.URL { return m.URL }

// ResponseMetaInfo is metadata of a response that did not come from an HTTP exchange.
type ResponseMetaInfo struct {
	URL      *url.URL
	MIMEType string
}

// ResponseURL returns the URL the response was received from.
func (m *ResponseMetaInfo) ResponseURL() *url.URL { return m.URL }
