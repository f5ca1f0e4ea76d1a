package model

import "time"

// Export is the top-level JSON structure written by the export command.
type Export struct {
	ExportedAt time.Time      `json:"exported_at"`
	Words      []WordEntry    `json:"words"`
	Results    []ResultRecord `json:"results"`
	Summary    ResultSummary  `json:"summary"`
}
