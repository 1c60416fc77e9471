package model

// Insights is the server-computed analysis of a single portfolio. All
// fields, including the diversification score and risk level, are produced
// by the backend; the client only transports and renders them.
type Insights struct {
	DiversificationScore float64         `json:"diversificationScore"`
	RiskLevel            string          `json:"riskLevel"`
	TotalValue           float64         `json:"totalValue"`
	AssetCount           int             `json:"assetCount"`
	Recommendations      []string        `json:"recommendations"`
	Analysis             InsightAnalysis `json:"analysis"`
	SuggestedAssets      []string        `json:"suggestedAssets"`
}

// InsightAnalysis is the narrative portion of an insight document.
type InsightAnalysis struct {
	Summary    string   `json:"summary"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}
