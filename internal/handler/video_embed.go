package handler

import (
	"fmt"
	htmlstd "html"
	"net/url"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

const videoAspectLandscape = "16:9"

var (
	videoEmbedSrcPattern = regexp.MustCompile(`^https://(?:www\.)?(?:youtube\.com/embed/|youtube-nocookie\.com/embed/)`)
	anchorTargetPattern  = regexp.MustCompile(`^_blank$`)
)

// buildContentSanitizer 在 UGC 策略基础上放行导出内容用到的容器与媒体元素。
func buildContentSanitizer() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe", "audio")
	policy.AllowAttrs("class").Matching(regexp.MustCompile(`^(?:embed|attachment|row|url|video-embed)$`)).OnElements("div", "a")
	policy.AllowAttrs("data-video-embed", "data-video-platform", "data-video-aspect", "data-video-source").OnElements("div")
	policy.AllowAttrs("target").Matching(anchorTargetPattern).OnElements("a")
	policy.AllowAttrs("src").Matching(videoEmbedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	policy.AllowAttrs("src", "controls", "preload").OnElements("audio")
	policy.AllowAttrs("loading").OnElements("img")
	// UGC 策略只放行不含引号的 alt
	policy.AllowAttrs("alt").OnElements("img")
	return policy
}

type videoEmbed struct {
	Platform string
	Source   string
	EmbedURL string
	Aspect   string
}

// youtubeEmbed builds the player embed for a video id taken from a youtube shortcode.
func youtubeEmbed(videoID string) videoEmbed {
	embedValues := url.Values{}
	embedValues.Set("rel", "0")
	embedValues.Set("modestbranding", "1")
	embedValues.Set("playsinline", "1")

	return videoEmbed{
		Platform: "youtube",
		Source:   "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID),
		EmbedURL: fmt.Sprintf("https://www.youtube-nocookie.com/embed/%s?%s", url.PathEscape(videoID), embedValues.Encode()),
		Aspect:   videoAspectLandscape,
	}
}

func buildVideoEmbedHTML(embed videoEmbed) string {
	platform := htmlstd.EscapeString(embed.Platform)
	aspect := htmlstd.EscapeString(embed.Aspect)
	source := htmlstd.EscapeString(embed.Source)
	embedURL := htmlstd.EscapeString(embed.EmbedURL)

	return fmt.Sprintf(
		`<div class="video-embed" data-video-embed="true" data-video-platform="%s" data-video-aspect="%s" data-video-source="%s">`+
			`<iframe src="%s" title="YouTube video player" loading="lazy" allow="%s" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe>`+
			`</div>`,
		platform,
		aspect,
		source,
		embedURL,
		videoEmbedAllowAttribute(),
	)
}

func videoEmbedAllowAttribute() string {
	return "accelerometer; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"
}
