package models

// SearchListResponse represents the response from the YouTube search endpoint
type SearchListResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			ChannelID   string `json:"channelId"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

// VideoStatisticsResponse represents the response from the YouTube videos endpoint
type VideoStatisticsResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// ChannelResponse represents the response from the YouTube channels endpoint
type ChannelResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			SubscriberCount       string `json:"subscriberCount"`
			HiddenSubscriberCount bool   `json:"hiddenSubscriberCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// APIErrorResponse is the error envelope returned on non-2xx replies
type APIErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
