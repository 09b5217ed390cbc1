package triage

import "errors"

// Pipeline errors.
var (
	ErrReportNotFound = errors.New("report not found")
	ErrNoImages       = errors.New("report contains no images to analyze")
	ErrAnalysisFailed = errors.New("report analysis failed")
)
