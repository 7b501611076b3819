package identity

// AuthRequest is the body of register and login requests.
type AuthRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful login.
type AuthResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	GamesWon int    `json:"games_won"`
	Token    string `json:"token"`
}
