package model

// Remote server reachability states.
const (
	ServerStatusUnknown = "unknown"
	ServerStatusOnline  = "online"
	ServerStatusOffline = "offline"
)

// Backup run states.
const (
	BackupStatusRunning   = "running"
	BackupStatusCompleted = "completed"
	BackupStatusFailed    = "failed"
)

// Backup job types, one per remote config key family.
const (
	BackupTypeSystem = "system"
	BackupTypeMail   = "mail"
)

// Spam filter rule types.
const (
	RuleTypeThreshold  = "threshold"
	RuleTypeWhitelist  = "whitelist"
	RuleTypeBlacklist  = "blacklist"
	RuleTypeHeader     = "header"
	RuleTypeBody       = "body"
	RuleTypeAttachment = "attachment"
	RuleTypeSender     = "sender"
	RuleTypeRecipient  = "recipient"
)

// MailboxStatusActive is the default mailbox state when the remote
// server reports none.
const MailboxStatusActive = "active"
