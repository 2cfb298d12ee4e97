package exchange

import (
	"crypto/tls"
	"net/http"
)

// BuildClient constructs the HTTP client for a single exchange. There is
// no user-facing timeout; the transport's own defaults apply.
func BuildClient(options *Options) *http.Client {
	checkRedirect := func(req *http.Request, via []*http.Request) error {
		// Do not follow redirects
		return http.ErrUseLastResponse
	}
	if options.FollowRedirects {
		checkRedirect = nil
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if options.SkipVerify {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{}
		}
		transport.TLSClientConfig.InsecureSkipVerify = true
	}

	return &http.Client{
		CheckRedirect: checkRedirect,
		Transport:     transport,
	}
}
