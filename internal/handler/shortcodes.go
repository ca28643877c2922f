package handler

import (
	"fmt"
	htmlstd "html"
	"net/url"
	"regexp"
)

var (
	shortcodePattern    = regexp.MustCompile(`\{\{\s*(image|audio|youtube)\((.*?)\)\s*\}\}`)
	shortcodeArgPattern = regexp.MustCompile(`(\w+)\s*=\s*"([^"]*)"`)
)

// expandShortcodes 把 Zola 短代码替换成预览用的 HTML。
// 参数值里的 &quot; 先还原，再按 HTML 属性重新转义。
func expandShortcodes(body string) string {
	return shortcodePattern.ReplaceAllStringFunc(body, func(match string) string {
		groups := shortcodePattern.FindStringSubmatch(match)
		args := parseShortcodeArgs(groups[2])

		switch groups[1] {
		case "image":
			return fmt.Sprintf(`<img src="%s" alt="%s" loading="lazy">`,
				htmlstd.EscapeString(assetURL(args["path"])), htmlstd.EscapeString(args["alt"]))
		case "audio":
			return fmt.Sprintf(`<audio controls preload="none" src="%s"></audio>`, htmlstd.EscapeString(assetURL(args["path"])))
		case "youtube":
			if args["v"] == "" {
				return ""
			}
			return buildVideoEmbedHTML(youtubeEmbed(args["v"]))
		}
		return match
	})
}

// assetURL re-encodes a decoded static path for use as a link target.
func assetURL(decodedPath string) string {
	return (&url.URL{Path: decodedPath}).EscapedPath()
}

func parseShortcodeArgs(raw string) map[string]string {
	args := make(map[string]string)
	for _, m := range shortcodeArgPattern.FindAllStringSubmatch(raw, -1) {
		args[m[1]] = htmlstd.UnescapeString(m[2])
	}
	return args
}
