package models

// AnalysisCompleted is published when an advanced analysis finishes.
type AnalysisCompleted struct {
	EventType    string `json:"eventType"`
	AnalysisID   string `json:"analysisId"`
	Timestamp    int64  `json:"timestamp"`
	Total        int    `json:"total"`
	QualityLevel string `json:"qualityLevel"`
	VideoUsed    bool   `json:"videoUsed"`
}

// AnalysisFailed is published when an advanced analysis terminates with a
// fatal error.
type AnalysisFailed struct {
	EventType  string `json:"eventType"`
	AnalysisID string `json:"analysisId"`
	Timestamp  int64  `json:"timestamp"`
	Stage      string `json:"stage"`
	Reason     string `json:"reason"`
}
