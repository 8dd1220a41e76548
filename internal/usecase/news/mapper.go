package news

import "encoding/json"

// Reasons attached to indecisive outcomes.
const (
	ReasonMissingBody  = "missing_body"
	ReasonMissingMeta  = "missing_meta"
	ReasonNonHTTP      = "non_http_response"
	ReasonUnacceptable = "unacceptable_status"
	ReasonUndecodable  = "undecodable_body"
)

// MapResponse interprets one transport callback.
//
//   - A transport error always yields a failure.
//   - A body with an HTTP status in [200, 299) that decodes into T yields a success.
//   - Anything else is indecisive.
//
// A non-2xx status or a body that fails strict decoding is never a failure.
func MapResponse[T any](raw RawResponse) Outcome[T] {
	if raw.Err != nil {
		return Failed[T](raw.Err)
	}
	if raw.Body == nil {
		return Indecisive[T](ReasonMissingBody)
	}
	if raw.Meta == nil {
		return Indecisive[T](ReasonMissingMeta)
	}

	meta, ok := raw.Meta.(*HTTPResponseMeta)
	if !ok || meta == nil {
		return Indecisive[T](ReasonNonHTTP)
	}
	if !acceptableStatus(meta.StatusCode) {
		return Indecisive[T](ReasonUnacceptable)
	}

	var decoded T
	if err := json.Unmarshal(raw.Body, &decoded); err != nil {
		return Indecisive[T](ReasonUndecodable)
	}
	return Succeeded(decoded)
}

func acceptableStatus(code int) bool {
	return code >= 200 && code < 299
}
