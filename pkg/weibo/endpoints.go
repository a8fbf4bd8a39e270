package weibo

import (
	"fmt"
	"net/url"
)

// DefaultBaseURL is the mobile container feed endpoint
const DefaultBaseURL = "https://m.weibo.cn/api/container/getIndex"

// FeedURL builds the paginated feed URL for a container
func FeedURL(baseURL, containerID string, page int) string {
	params := url.Values{}
	params.Set("containerid", containerID)
	params.Set("page", fmt.Sprintf("%d", page))
	return baseURL + "?" + params.Encode()
}
