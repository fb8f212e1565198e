package request

type CreateSpamFilter struct {
	RuleType string   `json:"rule_type" validate:"required,oneof=threshold whitelist blacklist"`
	Pattern  string   `json:"pattern" validate:"required_unless=RuleType threshold"`
	Score    *float64 `json:"score" validate:"required_if=RuleType threshold"`
}
