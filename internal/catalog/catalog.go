package catalog

import "time"

/*
The catalog is a record of what a snapshot processed. It is a primitive
for verifying, inventorying and auditing archived data.
*/

// Catalog summarizes one completed snapshot run.
type Catalog struct {
	SnapshotID          string    `json:"snapshot_id"`
	StartTime           time.Time `json:"start_time"`
	EndTime             time.Time `json:"end_time"`
	Source              string    `json:"source"`
	NumSourceLines      int       `json:"num_source_lines"`
	NumRecordsProcessed int       `json:"num_records_processed"`
	NumBytesRead        int64     `json:"num_bytes_read"`
	Success             bool      `json:"success"`
	Error               string    `json:"error,omitempty"`
}
