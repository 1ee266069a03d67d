package video

import (
	"regexp"
	"strings"
)

const (
	shortLinkMarker = "youtu.be"
	embedBaseURL    = "https://www.youtube.com/embed/"
)

// Value of the v query parameter, up to the next & or #
var videoParamRe = regexp.MustCompile(`(?:^|[?&#/])v=([^&#]+)`)

type EmbedInfo struct {
	VideoID string
	URL     string
}

// ExtractVideoID pulls the YouTube video id out of a watch or short link.
// The v= parameter wins; short links fall back to their last path segment.
func ExtractVideoID(link string) (string, bool) {
	if m := videoParamRe.FindStringSubmatch(link); m != nil {
		return m[1], true
	}

	if strings.Contains(link, shortLinkMarker) {
		id := link
		if idx := strings.IndexAny(id, "?#"); idx != -1 {
			id = id[:idx]
		}
		id = id[strings.LastIndex(id, "/")+1:]
		if id != "" && !strings.Contains(id, shortLinkMarker) {
			return id, true
		}
	}

	return "", false
}

func EmbedURL(videoID string) string {
	return embedBaseURL + videoID
}

// GetEmbedInfo returns false when the link has no recognisable video id,
// in which case the entry is skipped from display.
func GetEmbedInfo(link string) (EmbedInfo, bool) {
	id, ok := ExtractVideoID(strings.TrimSpace(link))
	if !ok {
		return EmbedInfo{}, false
	}
	return EmbedInfo{VideoID: id, URL: EmbedURL(id)}, true
}
