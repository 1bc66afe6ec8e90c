package dto

// TimeSeriesValue は /time_series の1本分のバーのDTOです。
type TimeSeriesValue struct {
	Datetime string `json:"datetime"`
	Open     string `json:"open"`
	High     string `json:"high"`
	Low      string `json:"low"`
	Close    string `json:"close"`
	Volume   string `json:"volume"`
}

// TimeSeriesResponse はTwelve Data /time_series エンドポイントのレスポンスDTOです。
type TimeSeriesResponse struct {
	Values  []TimeSeriesValue `json:"values"`
	Status  string            `json:"status"`
	Code    int               `json:"code"`
	Message string            `json:"message"`
}
