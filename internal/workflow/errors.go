package workflow

import "errors"

// Node-level failure causes. These wrap into graph execution errors
// and surface as server failures at the API boundary.
var (
	ErrExtractFailed   = errors.New("text extraction failed")
	ErrAnalyzeFailed   = errors.New("invoice analysis failed")
	ErrSummarizeFailed = errors.New("summary computation failed")
)
