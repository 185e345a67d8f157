package dto

type DashboardCountsResponse struct {
	Users          int64 `json:"users"`
	Brokers        int64 `json:"brokers"`
	Cases          int64 `json:"cases"`
	PublishedCases int64 `json:"published_cases"`
	Inquiries      int64 `json:"inquiries"`
	OpenInquiries  int64 `json:"open_inquiries"`
	ChatSessions   int64 `json:"chat_sessions"`
}

type LogQuery struct {
	Level  string `query:"level" validate:"omitempty,oneof=DEBUG INFO WARN ERROR"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}
