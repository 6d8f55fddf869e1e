package api

import (
	"net/url"
	"strings"
)

type queryParam struct {
	key   string
	value string
}

func param(key, value string) queryParam {
	return queryParam{key: key, value: strings.TrimSpace(value)}
}

// endpoint appends params in argument order and skips empty values. The
// order is fixed per endpoint so equal reads share one dedup key.
func endpoint(path string, params ...queryParam) string {
	var b strings.Builder
	b.WriteString(path)
	sep := byte('?')
	for _, p := range params {
		if p.value == "" {
			continue
		}
		b.WriteByte(sep)
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
		sep = '&'
	}
	return b.String()
}
