package dto

type CalcTimesResult struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

type CalcTimesResponse struct {
	Result CalcTimesResult `json:"result"`
}
