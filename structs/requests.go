// Package structs holds the request bodies the HTTP handlers bind; gin
// validates the binding tags before any handler logic runs.
package structs

// SignUpRequest registers a new predictor account. The password rules mirror
// the Cognito user pool policy so rejections happen before the SDK call.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// VerifyEmailRequest confirms a signup with the emailed code.
type VerifyEmailRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmationCode" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type VerifyForgotPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// SubmitPredictionRequest is one answer to a question of a match. A second
// submission for the same question overwrites the first while the match is
// still open.
type SubmitPredictionRequest struct {
	MatchID          string `json:"matchId" binding:"required"`
	PredictionGameID string `json:"predictionGameId"`
	QuestionID       string `json:"questionId" binding:"required"`
	Answer           string `json:"answer" binding:"required"`
}

// MatchResultRequest carries the admin-entered outcome of a match. The
// PredictionResults map uses question keys in any of the historical formats;
// the structured fields are the preferred source.
type MatchResultRequest struct {
	MatchID           string            `json:"matchId" binding:"required"`
	Winner            string            `json:"winner"`
	Team1Score        string            `json:"team1Score"`
	Team2Score        string            `json:"team2Score"`
	HighestTotal      int               `json:"highestTotal"`
	TopBatsmanID      string            `json:"topBatsmanId"`
	TopBowlerID       string            `json:"topBowlerId"`
	MoreSixes         string            `json:"moreSixes"`
	PredictionResults map[string]string `json:"predictionResults"`
}

// QuestionRequest creates or updates a scoreable question.
type QuestionRequest struct {
	Text           string           `json:"text" binding:"required"`
	Type           string           `json:"type" binding:"required"`
	Points         int              `json:"points"`
	NegativePoints int              `json:"negativePoints"`
	Options        []QuestionOption `json:"options"`
	IsActive       *bool            `json:"isActive"`
}

type QuestionOption struct {
	ID    string `json:"id"`
	Value string `json:"value" binding:"required"`
	Label string `json:"label"`
}
