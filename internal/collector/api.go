package collector

// Reading is one sample reported by the upstream gateway.
type Reading struct {
	Device    string  `json:"device"`
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Timestamp string  `json:"ts"`
}

// ApiResponse models the top-level structure of the upstream gateway's response.
type ApiResponse struct {
	Code int `json:"code"`
	Data struct {
		Page     int       `json:"page"`
		PageSize int       `json:"pageSize"`
		Total    int       `json:"total"`
		Items    []Reading `json:"items"`
	} `json:"data"`
}
