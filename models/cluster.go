package models

// Cluster is a named geographic service zone. Jobs and technicians are
// partitioned into matching pools by cluster name (string match).
type Cluster struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Location    string `gorm:"not null" json:"location"`
	Description string `json:"description"`
}

// TableName specifies the table name for the Cluster model
func (Cluster) TableName() string {
	return "clusters"
}

// DefaultClusters is the fixed set of five service zones seeded at startup
var DefaultClusters = []Cluster{
	{ID: "cl-1", Name: "Belgaum North", Location: "Belgaum, Karnataka", Description: "Urban cluster covering north Belgaum residential areas"},
	{ID: "cl-2", Name: "Belgaum South", Location: "Belgaum, Karnataka", Description: "Southern residential and semi-urban areas"},
	{ID: "cl-3", Name: "Belgaum Rural East", Location: "Belgaum, Karnataka", Description: "Eastern rural villages with solar installations"},
	{ID: "cl-4", Name: "Belgaum Rural West", Location: "Belgaum, Karnataka", Description: "Western rural cluster near agricultural zones"},
	{ID: "cl-5", Name: "Khanapur", Location: "Belgaum, Karnataka", Description: "Khanapur taluk solar service zone"},
}

// IsKnownCluster reports whether name is one of the seeded service zones
func IsKnownCluster(name string) bool {
	for _, c := range DefaultClusters {
		if c.Name == name {
			return true
		}
	}
	return false
}
