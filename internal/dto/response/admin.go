package response

type UserStatsResponse struct {
	Users int64 `json:"users"`
}

type SweepResponse struct {
	Completed int64 `json:"completed"`
}
