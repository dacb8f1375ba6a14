// Package util holds small shared helpers.
package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds an http.Transport proxy callback from explicit
// proxy URLs. With no explicit URLs it defers to the standard
// HTTP_PROXY/HTTPS_PROXY/NO_PROXY environment handling. noProxy is a
// comma-separated host list; matching hosts (or their subdomains)
// bypass the proxy.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	skip := parseNoProxy(noProxy)

	return func(req *http.Request) (*url.URL, error) {
		if hostBypassesProxy(req.URL.Hostname(), skip) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func parseNoProxy(noProxy string) []string {
	if noProxy == "" {
		return nil
	}
	parts := strings.Split(noProxy, ",")
	hosts := make([]string, 0, len(parts))
	for _, part := range parts {
		host := strings.ToLower(strings.TrimSpace(part))
		if host != "" {
			hosts = append(hosts, strings.TrimPrefix(host, "."))
		}
	}
	return hosts
}

func hostBypassesProxy(host string, skip []string) bool {
	host = strings.ToLower(host)
	for _, s := range skip {
		if s == "*" || host == s || strings.HasSuffix(host, "."+s) {
			return true
		}
	}
	return false
}
