package browse

import (
	"fmt"
	"strings"
)

// ConsoleBaseURL is the root of the AWS S3 web console.
const ConsoleBaseURL = "https://s3.console.aws.amazon.com/s3"

// ConsoleURI renders the console URL for prefix using the default delimiter.
// See ConsoleURIWithDelimiter.
func ConsoleURI(container, prefix, region string, isDirectory bool) string {
	return ConsoleURIWithDelimiter(container, prefix, region, isDirectory, DefaultDelimiter)
}

// ConsoleURIWithDelimiter renders the console URL for a terminal state.
//
// It returns "" when prefix is empty or ends in delimiter: such a state is
// not terminal yet. A directory renders as the bucket browser opened at the
// folder; an object renders as the object detail page.
//
// Keys are inserted verbatim. Characters that need escaping in a URL are
// not escaped.
func ConsoleURIWithDelimiter(container, prefix, region string, isDirectory bool, delimiter string) string {
	if prefix == "" || strings.HasSuffix(prefix, delimiter) {
		return ""
	}

	if isDirectory {
		return fmt.Sprintf("%s/buckets/%s?region=%s&prefix=%s%s&showversions=false",
			ConsoleBaseURL, container, region, prefix, delimiter)
	}
	return fmt.Sprintf("%s/object/%s?prefix=%s&region=%s",
		ConsoleBaseURL, container, prefix, region)
}
