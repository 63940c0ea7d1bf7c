// Copyright 2025 The Butler Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ingestion

// Status tags how an artifact run ended.
type Status int

const (
	// Processed means shards were indexed and the artifact archived.
	Processed Status = iota + 1
	// Skipped means the artifact was not ingestible (unreadable binary,
	// empty content, already archived) and was set aside without indexing.
	Skipped
	// Failed means a stage failed; any partial outputs were discarded.
	Failed
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case Processed:
		return "processed"
	case Skipped:
		return "skipped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stage identifies where in the pipeline an artifact run currently is, or
// where it stopped.
type Stage int

const (
	StageReceived Stage = iota + 1
	StageExtracting
	StageChunking
	StageAnalyzing
	StageEmbedding
	StageIndexing
	StageArchived
)

// String returns a human-readable name for the stage.
func (s Stage) String() string {
	switch s {
	case StageReceived:
		return "received"
	case StageExtracting:
		return "extracting"
	case StageChunking:
		return "chunking"
	case StageAnalyzing:
		return "analyzing"
	case StageEmbedding:
		return "embedding"
	case StageIndexing:
		return "indexing"
	case StageArchived:
		return "archived"
	default:
		return "unknown"
	}
}

// Outcome describes how one artifact run ended. Err is set only for Failed
// outcomes and records the stage failure cause; it is data, not a pipeline
// error.
type Outcome struct {
	Status     Status
	Artifact   string
	ArchivedAs string
	Shards     int
	Stage      Stage
	Err        error
}
