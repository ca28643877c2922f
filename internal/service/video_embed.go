package service

import (
	"net/url"
	"strings"
)

const youtubeDomain = "youtube.com"

// youtubeVideoID 返回 youtube.com（含子域名）链接里第一个 v 参数。
// 没有 v 参数时返回 false，调用方只保留普通链接。
func youtubeVideoID(u *url.URL) (string, bool) {
	if u == nil || !isHostOrSubdomain(u.Hostname(), youtubeDomain) {
		return "", false
	}

	values, ok := u.Query()["v"]
	if !ok || len(values) == 0 || values[0] == "" {
		return "", false
	}
	return values[0], true
}

// parseEmbedURL treats markdown content as an embed when it parses as an absolute
// URL. Any scheme counts, so "note: read this" is an embed too.
func parseEmbedURL(content string) (*url.URL, bool) {
	parsed, err := url.Parse(content)
	if err != nil || !parsed.IsAbs() {
		return nil, false
	}
	return parsed, true
}

func isHostOrSubdomain(host, domain string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	domain = strings.ToLower(strings.TrimSpace(domain))
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
