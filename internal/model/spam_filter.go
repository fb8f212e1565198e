package model

type SpamFilter struct {
	ID          string   `json:"id" db:"id"`
	ServerID    string   `json:"server_id" db:"server_id"`
	Name        string   `json:"name" db:"name"`
	RuleType    string   `json:"rule_type" db:"rule_type"`
	Pattern     string   `json:"pattern" db:"pattern"`
	Action      string   `json:"action" db:"action"`
	IsActive    bool     `json:"is_active" db:"is_active"`
	Description *string  `json:"description,omitempty" db:"description"`
	Score       *float64 `json:"score,omitempty" db:"score"`
}
