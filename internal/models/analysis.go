// -----------------------------------------------------------------------
// AnalysisResult - Schema definitions for financial statement analysis
// Provides strongly-typed structures for model extraction output
// -----------------------------------------------------------------------

package models

import (
	"encoding/json"
	"strings"
)

// YearLabel holds a fiscal year that the model may report either as a
// JSON number or a string (e.g. 2025 or "FY2025").
type YearLabel string

// UnmarshalJSON accepts both string and numeric year values.
func (y *YearLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*y = YearLabel(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*y = YearLabel(n.String())
	return nil
}

// MarshalJSON emits the label as a string.
func (y YearLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(y))
}

// Financials holds the primary figures for one reporting currency.
// Revenue, COGS and OPEX are pointers so that a legitimate zero survives
// the required check - absence, not zero, is the failure condition.
type Financials struct {
	Revenue *float64 `json:"revenue" validate:"required"`
	COGS    *float64 `json:"cogs" validate:"required"`
	OPEX    *float64 `json:"opex" validate:"required"`
	Unit    string   `json:"unit" validate:"required"`
}

// FinancialsUSD mirrors Financials converted at the model-sourced exchange
// rate. The USD block is advisory and deliberately carries no validation
// tags: a partial conversion is passed through rather than rejected.
type FinancialsUSD struct {
	Revenue      *float64 `json:"revenue"`
	COGS         *float64 `json:"cogs"`
	OPEX         *float64 `json:"opex"`
	ExchangeRate float64  `json:"exchangeRate"`
	Unit         string   `json:"unit"`
}

// LiquidityRatios holds liquidity metrics. Nil means the model could not
// derive the ratio from the statement.
type LiquidityRatios struct {
	CurrentRatio *float64 `json:"currentRatio"`
}

// ProfitabilityRatios holds margin metrics.
type ProfitabilityRatios struct {
	GrossMarginPercent     *float64 `json:"grossMarginPercent"`
	OperatingMarginPercent *float64 `json:"operatingMarginPercent"`
	NetProfitMarginPercent *float64 `json:"netProfitMarginPercent"`
}

// DebtRatios holds leverage metrics.
type DebtRatios struct {
	DebtToEquity *float64 `json:"debtToEquity"`
}

// EfficiencyRatios holds asset utilisation metrics.
type EfficiencyRatios struct {
	AssetTurnover *float64 `json:"assetTurnover"`
}

// RatioAnalysis aggregates the computed ratios with a narrative summary.
type RatioAnalysis struct {
	Summary       string              `json:"summary" validate:"required"`
	Liquidity     LiquidityRatios     `json:"liquidity"`
	Profitability ProfitabilityRatios `json:"profitability"`
	Debt          DebtRatios          `json:"debt"`
	Efficiency    EfficiencyRatios    `json:"efficiency"`
}

// TrendPoint is one year of the revenue/PBT time series behind the trend
// analysis.
type TrendPoint struct {
	Year            YearLabel `json:"year"`
	Revenue         float64   `json:"revenue"`
	ProfitBeforeTax float64   `json:"profitBeforeTax"`
}

// TrendAnalysis holds the multi-year series and its narrative summary.
// ChartData must be present as a sequence; an empty sequence is valid
// (single-period statements), a missing one is not.
type TrendAnalysis struct {
	Summary   string       `json:"summary"`
	ChartData []TrendPoint `json:"chartData" validate:"required"`
}

// Analysis is the container for the three analysis sections. NewsAnalysis
// is optional on extraction and is the only field the pipeline rewrites
// after validation, via the news merge.
type Analysis struct {
	RatioAnalysis RatioAnalysis `json:"ratioAnalysis"`
	TrendAnalysis TrendAnalysis `json:"trendAnalysis"`
	NewsAnalysis  *NewsAnalysis `json:"newsAnalysis,omitempty"`
}

// Recommendation actions for InvestmentRecommendation.Action.
const (
	ActionBuy  = "Buy"
	ActionHold = "Hold"
	ActionSell = "Sell"
)

// InvestmentRecommendation is the model's buy/hold/sell call.
type InvestmentRecommendation struct {
	Action        string `json:"action"`
	Justification string `json:"justification"`
}

// AnalysisResult is the validated output contract of the extraction stage.
// Field presence rules are expressed as validator tags; everything beyond
// the tagged fields is passed through as the model produced it.
type AnalysisResult struct {
	CompanyName              string                    `json:"companyName" validate:"required"`
	TickerSymbol             string                    `json:"tickerSymbol,omitempty"`
	Currency                 string                    `json:"currency"`
	MostRecentYear           YearLabel                 `json:"mostRecentYear"`
	FinancialsLocal          Financials                `json:"financialsLocal"`
	FinancialsUSD            *FinancialsUSD            `json:"financialsUSD,omitempty"`
	Analysis                 Analysis                  `json:"analysis"`
	Recommendations          []string                  `json:"recommendations"`
	InvestmentRecommendation *InvestmentRecommendation `json:"investmentRecommendation,omitempty"`
}

// HasTicker reports whether the model identified an exchange ticker.
func (r *AnalysisResult) HasTicker() bool {
	return strings.TrimSpace(r.TickerSymbol) != ""
}
