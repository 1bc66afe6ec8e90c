package dto

// FiftyTwoWeek は52週レンジのDTOです。
type FiftyTwoWeek struct {
	Low  string `json:"low"`
	High string `json:"high"`
}

// QuoteResponse はTwelve Data /quote エンドポイントのレスポンスDTOです。
// 数値フィールドはすべて文字列で返されます。エラー時はcode/message/statusのみが
// 設定された共通エンベロープが返されます。
type QuoteResponse struct {
	Symbol        string       `json:"symbol"`
	Name          string       `json:"name"`
	Open          string       `json:"open"`
	High          string       `json:"high"`
	Low           string       `json:"low"`
	Close         string       `json:"close"`
	Volume        string       `json:"volume"`
	PreviousClose string       `json:"previous_close"`
	Change        string       `json:"change"`
	PercentChange string       `json:"percent_change"`
	FiftyTwoWeek  FiftyTwoWeek `json:"fifty_two_week"`

	// Error envelope
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}
