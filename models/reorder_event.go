package models

type ReorderEvent struct {
	ID            string   `json:"id" bson:"_id"`
	ManifestPath  string   `json:"manifest_path" bson:"manifest_path"`
	Path          []string `json:"path" bson:"path"`
	Filename      string   `json:"filename" bson:"filename"`
	PreviousIndex int      `json:"previous_index" bson:"previous_index"`
	PreviousFirst string   `json:"previous_first" bson:"previous_first"`
	DryRun        bool     `json:"dry_run" bson:"dry_run"`
	CreatedAt     int64    `json:"created_at" bson:"created_at"` // Unix milliseconds
}
