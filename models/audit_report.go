package models

type AuditReport struct {
	ID           string             `json:"id" bson:"_id"`
	ManifestPath string             `json:"manifest_path" bson:"manifest_path"`
	ProfilesDir  string             `json:"profiles_dir" bson:"profiles_dir"`
	TotalSeeds   int                `json:"total_seeds" bson:"total_seeds"`
	UniqueSeeds  int                `json:"unique_seeds" bson:"unique_seeds"`
	Missing      []MissingProfile   `json:"missing" bson:"missing"`
	Unchecked    []UncheckedProfile `json:"unchecked" bson:"unchecked"`   // stat failed for a reason other than not-exist
	CreatedAt    int64              `json:"created_at" bson:"created_at"` // Unix milliseconds
}

type MissingProfile struct {
	Filename string `json:"filename" bson:"filename"`
	Artist   string `json:"artist" bson:"artist"`
	Name     string `json:"name" bson:"name"`
}

type UncheckedProfile struct {
	Filename string `json:"filename" bson:"filename"`
	Artist   string `json:"artist" bson:"artist"`
	Name     string `json:"name" bson:"name"`
	Error    string `json:"error" bson:"error"`
}
