package line

// --- Group members ---
type memberIDsDTO struct {
	MemberIDs []string `json:"memberIds"`
	Next      string   `json:"next"`
}

type profileDTO struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
}

// --- Messaging ---
type textMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []textMessage `json:"messages"`
}

type pushRequest struct {
	To       string        `json:"to"`
	Messages []textMessage `json:"messages"`
}
