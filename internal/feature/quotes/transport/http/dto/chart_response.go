package dto

import (
	"math"

	"bloomberg_lite/internal/feature/quotes/domain/entity"
)

// ChartResponse はチャート描画用の等長配列によるレスポンスDTOです。
type ChartResponse struct {
	Dates   []string  `json:"dates"`
	Opens   []float64 `json:"opens"`
	Highs   []float64 `json:"highs"`
	Lows    []float64 `json:"lows"`
	Prices  []float64 `json:"prices"` // 終値
	Volumes []int64   `json:"volumes"`
}

// NewChartResponse は日足のスライスをチャート用の配列に変換します。
// 価格は小数第2位に丸められます。すべての配列は同じ長さになります。
func NewChartResponse(bars []entity.Bar) ChartResponse {
	out := ChartResponse{
		Dates:   make([]string, 0, len(bars)),
		Opens:   make([]float64, 0, len(bars)),
		Highs:   make([]float64, 0, len(bars)),
		Lows:    make([]float64, 0, len(bars)),
		Prices:  make([]float64, 0, len(bars)),
		Volumes: make([]int64, 0, len(bars)),
	}
	for _, b := range bars {
		out.Dates = append(out.Dates, b.Time.UTC().Format("2006-01-02"))
		out.Opens = append(out.Opens, round2(b.Open))
		out.Highs = append(out.Highs, round2(b.High))
		out.Lows = append(out.Lows, round2(b.Low))
		out.Prices = append(out.Prices, round2(b.Close))
		out.Volumes = append(out.Volumes, b.Volume)
	}
	return out
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
