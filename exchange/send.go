package exchange

import (
	"net/http"

	"github.com/pkg/errors"
)

// Send performs the single request/response exchange. Any transport
// failure is surfaced verbatim; there are no retries.
func Send(assembled *Assembled, options *Options) (*http.Response, error) {
	client := BuildClient(options)
	resp, err := client.Do(assembled.Request)
	if err != nil {
		return nil, errors.Wrap(err, "sending HTTP request")
	}
	return resp, nil
}
