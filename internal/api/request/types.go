package request

// CreateBoardRequest is the request body for creating a board
type CreateBoardRequest struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Password string `json:"password"`
}

// AuthenticateRequest is the request body for checking a board password
type AuthenticateRequest struct {
	Password string `json:"password"`
}

// Participant is one player's final score
type Participant struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// RecordGameRequest is the request body for recording a game
type RecordGameRequest struct {
	Players []Participant `json:"players"`
}

// SetProfileRequest is the request body for linking a player to media
type SetProfileRequest struct {
	ImageURL string `json:"imageUrl"`
}

// UploadRequest is the request body for requesting a profile upload URL
type UploadRequest struct {
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}
