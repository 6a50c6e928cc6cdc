package user

import "time"

type User struct {
	ID        int
	Login     string
	Password  string // bcrypt hash
	CreatedAt time.Time
}

type BaseRequest struct {
	Login    string `json:"login" doc:"Login do usuário" minLength:"3" maxLength:"32"`
	Password string `json:"password" doc:"Senha" minLength:"4" maxLength:"72"`
}
