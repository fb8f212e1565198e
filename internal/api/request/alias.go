package request

type CreateAlias struct {
	SourceEmail      string `json:"source_email" validate:"required,email"`
	DestinationEmail string `json:"destination_email" validate:"required,email"`
}
