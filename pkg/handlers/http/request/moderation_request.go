package request

type ModerationRequest struct {
	Text string `json:"text" binding:"required"`
}
