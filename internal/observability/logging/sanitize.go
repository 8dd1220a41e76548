package logging

import (
	"regexp"
)

var (
	// Matches apiKey=<value> inside URLs embedded in error text, such as *url.Error.
	apiKeyParamPattern = regexp.MustCompile(`(?i)(apiKey=)[^&\s"]+`)

	// Password component of a DSN or proxy URL.
	userinfoPasswordPattern = regexp.MustCompile(`://([^:/@\s]+):([^@\s]+)@`)
)

// SanitizeError returns the error message with secrets masked.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = apiKeyParamPattern.ReplaceAllString(msg, "${1}"+redacted)
	msg = userinfoPasswordPattern.ReplaceAllString(msg, "://$1:****@")

	return msg
}
