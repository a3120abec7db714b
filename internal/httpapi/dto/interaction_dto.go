package dto

// TrackInteractionDTO logs a view/click/read/like/comment event. Guests may
// post these; userId comes from the session when present.
type TrackInteractionDTO struct {
	BlogID   string `json:"blogId" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Duration *int64 `json:"duration"`
}

// BlogLikeResult reports the state after a blog like toggle.
type BlogLikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"likeCount"`
}

// BlogLikeStatus is the read-side companion of BlogLikeResult.
type BlogLikeStatus struct {
	IsLiked   bool  `json:"isLiked"`
	LikeCount int64 `json:"likeCount"`
}

// ContactDTO captures a contact-form submission.
type ContactDTO struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"max=200"`
	Message string `json:"message" binding:"required"`
}

// SubscribeDTO joins the newsletter list.
type SubscribeDTO struct {
	Email string `json:"email" binding:"required,email"`
}
