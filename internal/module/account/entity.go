package account

type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
