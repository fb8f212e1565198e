package request

type CreateMailbox struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"`
}

type ChangeMailboxPassword struct {
	Password string `json:"password" validate:"required,min=8"`
}
