package domain

import "time"

// TransferRequest asks for one fetch-project-persist run
type TransferRequest struct {
	ApiName      string     `json:"api_name" validate:"required"`
	EndpointName string     `json:"endpoint_name" validate:"required"`
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	MaxRecords   int        `json:"max_records,omitempty"`
	// Source overrides the label stored with every row, defaults to the entity key
	Source string `json:"source,omitempty"`
}

// TransferResult summarizes a finished run
type TransferResult struct {
	ID              string        `json:"id" yaml:"id"`
	Entity          string        `json:"entity" yaml:"entity"`
	Source          string        `json:"source" yaml:"source"`
	Fetched         int           `json:"fetched" yaml:"fetched"`
	Written         int           `json:"written" yaml:"written"`
	FailOpenRecords int           `json:"fail_open_records" yaml:"fail_open_records"`
	Duration        time.Duration `json:"duration" yaml:"duration"`
}

// ProgressFunc receives a monotonically increasing fraction in [0,1]
type ProgressFunc func(fraction float64)
